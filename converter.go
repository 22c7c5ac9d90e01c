package pdfhtml

import (
	"io"
	"log"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// ProcessingMetrics contains timing and statistics for a conversion.
type ProcessingMetrics struct {
	TotalTime       time.Duration
	DocumentOpen    time.Duration
	PageExtractions []PageMetrics
	Statistics      DocumentStatistics
}

// PageMetrics contains timing for a single page.
type PageMetrics struct {
	PageNumber int
	Duration   time.Duration
}

// DocumentStatistics contains document-level statistics.
type DocumentStatistics struct {
	TotalPages      int
	TotalBlocks     int
	TotalHeadings   int
	TotalImages     int
	TotalRuns       int
	TotalCharacters int
}

// Converter reconstructs PDF layout into an HTML fragment using pdfium for
// text and image extraction.
type Converter struct {
	instance pdfium.Pdfium
	config   Config
}

// NewConverter creates a converter with the default configuration.
func NewConverter(instance pdfium.Pdfium) *Converter {
	return &Converter{
		instance: instance,
		config:   DefaultConfig(),
	}
}

// NewConverterWithConfig creates a converter with a custom configuration.
func NewConverterWithConfig(instance pdfium.Pdfium, config Config) *Converter {
	return &Converter{
		instance: instance,
		config:   config,
	}
}

// ConvertFile converts a PDF file to an HTML fragment.
func (c *Converter) ConvertFile(filePath string) (string, error) {
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF document")
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return c.convertDocument(doc.Document)
}

// ConvertBytes converts PDF bytes to an HTML fragment.
func (c *Converter) ConvertBytes(pdfBytes []byte) (string, error) {
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF document")
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return c.convertDocument(doc.Document)
}

// ConvertReader converts a PDF from an io.ReadSeeker to an HTML fragment.
func (c *Converter) ConvertReader(reader io.ReadSeeker) (string, error) {
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{
		FileReader: reader,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF document")
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return c.convertDocument(doc.Document)
}

// ConvertPageRange converts a specific range of pages (0-indexed, inclusive)
// to an HTML fragment. The body font size is estimated over the selected
// range only.
func (c *Converter) ConvertPageRange(filePath string, startPage, endPage int) (string, error) {
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF document")
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := c.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get page count")
	}

	if startPage < 0 {
		startPage = 0
	}
	if endPage < 0 || endPage >= pageCount.PageCount {
		endPage = pageCount.PageCount - 1
	}
	if startPage > endPage {
		return "", errors.New("invalid page range: start page must be <= end page")
	}

	document := &Document{}
	for i := startPage; i <= endPage; i++ {
		page, err := c.extractPage(doc.Document, i)
		if err != nil {
			return "", errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		document.Pages = append(document.Pages, *page)
	}

	outline := c.readOutline(doc.Document, document.Pages, startPage)
	return document.ToHTML(outline, c.config), nil
}

// convertDocument converts a complete PDF document to an HTML fragment.
// Every page must extract successfully; a failed page aborts the whole
// conversion since a missing page breaks pagination guarantees.
func (c *Converter) convertDocument(docRef references.FPDF_DOCUMENT) (string, error) {
	startTime := time.Now()

	pageCount, err := c.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: docRef,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get page count")
	}

	document := &Document{
		Pages: make([]Page, 0, pageCount.PageCount),
	}

	var pageMetrics []PageMetrics
	for i := 0; i < pageCount.PageCount; i++ {
		pageStart := time.Now()
		page, err := c.extractPage(docRef, i)
		pageDuration := time.Since(pageStart)

		if err != nil {
			return "", errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		document.Pages = append(document.Pages, *page)

		pageMetrics = append(pageMetrics, PageMetrics{
			PageNumber: i + 1,
			Duration:   pageDuration,
		})

		if c.config.EnableMetricsLogging {
			log.Printf("Page %d/%d extracted in %v", i+1, pageCount.PageCount, pageDuration)
		}
	}

	// The outline walk needs the extracted page heights to convert
	// destination coordinates to viewport space.
	outline := c.readOutline(docRef, document.Pages, 0)

	blocks := reconstructDocument(document, outline, c.config)
	html := renderDocument(document, blocks, c.config)

	if c.config.EnableMetricsLogging {
		logProcessingMetrics(ProcessingMetrics{
			TotalTime:       time.Since(startTime),
			PageExtractions: pageMetrics,
			Statistics:      documentStatistics(document, blocks),
		})
	}

	return html, nil
}

// extractPage loads a single page and extracts its content.
func (c *Converter) extractPage(docRef references.FPDF_DOCUMENT, pageIndex int) (*Page, error) {
	pageResp, err := c.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: docRef,
		Index:    pageIndex,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}
	defer c.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: pageResp.Page,
	})

	page, err := ExtractPage(c.instance, pageResp.Page, pageIndex+1, c.config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract page content")
	}

	return page, nil
}

// documentStatistics counts blocks, headings, images, runs and characters
// over an already-reconstructed document. blocks is indexed parallel to
// doc.Pages, as returned by reconstructDocument.
func documentStatistics(doc *Document, blocks [][]Block) DocumentStatistics {
	stats := DocumentStatistics{
		TotalPages: len(doc.Pages),
	}

	for i, page := range doc.Pages {
		stats.TotalImages += len(page.Images)
		stats.TotalRuns += len(page.Runs)
		for _, run := range page.Runs {
			stats.TotalCharacters += len([]rune(run.Text))
		}

		stats.TotalBlocks += len(blocks[i])
		for _, block := range blocks[i] {
			if block.IsHeading {
				stats.TotalHeadings++
			}
		}
	}

	return stats
}

// logProcessingMetrics logs the processing metrics in a readable format.
func logProcessingMetrics(metrics ProcessingMetrics) {
	log.Println("┌─────────────────────────────────────────────┐")
	log.Println("│ PDF Processing Metrics                      │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│ Total Time: %-31v │\n", metrics.TotalTime.Round(time.Millisecond))
	log.Println("├─────────────────────────────────────────────┤")
	log.Println("│ Document Statistics                         │")
	log.Println("├─────────────────────────────────────────────┤")
	log.Printf("│   Pages:      %-29d │\n", metrics.Statistics.TotalPages)
	log.Printf("│   Blocks:     %-29d │\n", metrics.Statistics.TotalBlocks)
	log.Printf("│   Headings:   %-29d │\n", metrics.Statistics.TotalHeadings)
	log.Printf("│   Images:     %-29d │\n", metrics.Statistics.TotalImages)
	log.Printf("│   Runs:       %-29d │\n", metrics.Statistics.TotalRuns)
	log.Printf("│   Characters: %-29d │\n", metrics.Statistics.TotalCharacters)
	log.Println("├─────────────────────────────────────────────┤")
	log.Println("│ Per-Page Timing                             │")
	log.Println("├─────────────────────────────────────────────┤")

	for _, pm := range metrics.PageExtractions {
		log.Printf("│   Page %2d: %-30v │\n", pm.PageNumber, pm.Duration.Round(time.Millisecond))
	}

	if len(metrics.PageExtractions) > 0 {
		avgTime := metrics.TotalTime / time.Duration(len(metrics.PageExtractions))
		log.Println("├─────────────────────────────────────────────┤")
		log.Printf("│ Avg per page: %-28v │\n", avgTime.Round(time.Millisecond))
	}

	log.Println("└─────────────────────────────────────────────┘")
}

// ConvertFileWithMetrics converts a PDF and returns both the HTML fragment
// and processing metrics.
func (c *Converter) ConvertFileWithMetrics(filePath string) (string, ProcessingMetrics, error) {
	startTime := time.Now()
	openStart := time.Now()

	doc, err := c.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return "", ProcessingMetrics{}, errors.Wrap(err, "failed to open PDF document")
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	documentOpenTime := time.Since(openStart)

	pageCount, err := c.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return "", ProcessingMetrics{}, errors.Wrap(err, "failed to get page count")
	}

	document := &Document{
		Pages: make([]Page, 0, pageCount.PageCount),
	}

	var pageMetrics []PageMetrics
	for i := 0; i < pageCount.PageCount; i++ {
		pageStart := time.Now()
		page, err := c.extractPage(doc.Document, i)
		pageDuration := time.Since(pageStart)

		if err != nil {
			return "", ProcessingMetrics{}, errors.Wrapf(err, "failed to extract page %d", i+1)
		}
		document.Pages = append(document.Pages, *page)

		pageMetrics = append(pageMetrics, PageMetrics{
			PageNumber: i + 1,
			Duration:   pageDuration,
		})
	}

	outline := c.readOutline(doc.Document, document.Pages, 0)
	blocks := reconstructDocument(document, outline, c.config)
	html := renderDocument(document, blocks, c.config)

	metrics := ProcessingMetrics{
		TotalTime:       time.Since(startTime),
		DocumentOpen:    documentOpenTime,
		PageExtractions: pageMetrics,
		Statistics:      documentStatistics(document, blocks),
	}

	return html, metrics, nil
}

// GetDocumentInfo returns basic information about a PDF without converting it.
func (c *Converter) GetDocumentInfo(filePath string) (*DocumentInfo, error) {
	doc, err := c.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer c.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := c.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &DocumentInfo{
		PageCount: pageCount.PageCount,
	}, nil
}

// DocumentInfo contains basic information about a PDF document.
type DocumentInfo struct {
	PageCount int
}
