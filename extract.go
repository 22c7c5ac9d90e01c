package pdfhtml

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// extractedChar is one character with its metadata, in viewport coordinates.
type extractedChar struct {
	text     rune
	x0, y0   float64 // top-left
	x1, y1   float64 // bottom-right
	fontSize float64
	fontName string
	r, g, b  uint
}

// ExtractPage extracts all text runs and embedded raster images from a PDF
// page. pageNumber is 1-based.
func ExtractPage(instance pdfium.Pdfium, page references.FPDF_PAGE, pageNumber int, config Config) (*Page, error) {
	widthResp, err := instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}

	heightResp, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}

	pageWidth := float64(widthResp.PageWidth)
	pageHeight := float64(heightResp.PageHeight)

	result := &Page{
		Number: pageNumber,
		Width:  pageWidth,
		Height: pageHeight,
	}

	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	if charCount.Count > 0 {
		chars, err := extractChars(instance, textPage.TextPage, charCount.Count, pageHeight)
		if err != nil {
			return nil, errors.Wrap(err, "failed to extract characters")
		}
		result.Runs = groupCharsIntoRuns(chars)
	}

	if config.IncludeImages {
		result.Images = extractImages(instance, page, pageNumber)
	}

	return result, nil
}

// extractChars reads every character with position, font and color metadata,
// converted from PDF coordinates (origin bottom-left) to viewport
// coordinates (origin top-left).
func extractChars(instance pdfium.Pdfium, textPage references.FPDF_TEXTPAGE, count int, pageHeight float64) ([]extractedChar, error) {
	chars := make([]extractedChar, 0, count)

	for i := 0; i < count; i++ {
		unicodeResp, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil || unicodeResp.Unicode == 0 {
			continue
		}

		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		char := extractedChar{
			text:     rune(unicodeResp.Unicode),
			x0:       charBox.Left,
			y0:       pageHeight - charBox.Top,
			x1:       charBox.Right,
			y1:       pageHeight - charBox.Bottom,
			fontSize: defaultBodyFontSize,
		}

		if fontSize, err := instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage,
			Index:    i,
		}); err == nil && fontSize.FontSize > 0 {
			char.fontSize = fontSize.FontSize
		}

		if fontInfo, err := instance.FPDFText_GetFontInfo(&requests.FPDFText_GetFontInfo{
			TextPage: textPage,
			Index:    i,
		}); err == nil {
			char.fontName = fontInfo.FontName
		}

		if fillColor, err := instance.FPDFText_GetFillColor(&requests.FPDFText_GetFillColor{
			TextPage: textPage,
			Index:    i,
		}); err == nil {
			char.r, char.g, char.b = fillColor.R, fillColor.G, fillColor.B
		}

		chars = append(chars, char)
	}

	return chars, nil
}

// groupCharsIntoRuns groups consecutive characters into text runs, splitting
// on whitespace. Newline characters close the preceding run and mark it with
// HasEOL instead of producing a run of their own.
func groupCharsIntoRuns(chars []extractedChar) []TextRun {
	var runs []TextRun
	var current []extractedChar

	flush := func(eol bool) {
		if len(current) == 0 {
			if eol && len(runs) > 0 {
				runs[len(runs)-1].HasEOL = true
			}
			return
		}
		run := buildRun(current)
		run.HasEOL = eol
		runs = append(runs, run)
		current = nil
	}

	for _, char := range chars {
		switch char.text {
		case '\n', '\r':
			flush(true)
		case ' ', '\t':
			flush(false)
		default:
			current = append(current, char)
		}
	}
	flush(false)

	return runs
}

// buildRun aggregates a group of characters into one TextRun.
func buildRun(chars []extractedChar) TextRun {
	first := chars[0]
	x0, y0, x1, y1 := first.x0, first.y0, first.x1, first.y1

	var text []rune
	var totalSize float64
	for _, char := range chars {
		text = append(text, char.text)
		totalSize += char.fontSize
		if char.x0 < x0 {
			x0 = char.x0
		}
		if char.y0 < y0 {
			y0 = char.y0
		}
		if char.x1 > x1 {
			x1 = char.x1
		}
		if char.y1 > y1 {
			y1 = char.y1
		}
	}

	// Font name and fill color are taken from the first character; runs are
	// split on whitespace, so mixed styles within one run are rare.
	bold, italic := styleFromFontName(first.fontName)

	var color string
	if first.r != 0 || first.g != 0 || first.b != 0 {
		color = fmt.Sprintf("rgb(%d, %d, %d)", first.r, first.g, first.b)
	}

	return TextRun{
		Text:     string(text),
		X:        x0,
		Y:        y0,
		Width:    x1 - x0,
		Height:   y1 - y0,
		FontSize: totalSize / float64(len(chars)),
		FontName: first.fontName,
		IsBold:   bold,
		IsItalic: italic,
		Color:    color,
	}
}

// extractImages collects the page's embedded raster images as PNG data URLs.
// A decode failure drops that single image with a diagnostic; it never
// aborts page processing.
func extractImages(instance pdfium.Pdfium, page references.FPDF_PAGE, pageNumber int) []RasterImage {
	countResp, err := instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil
	}

	var images []RasterImage
	for i := 0; i < countResp.Count; i++ {
		objResp, err := instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page:  requests.Page{ByReference: &page},
			Index: i,
		})
		if err != nil {
			continue
		}

		typeResp, err := instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_IMAGE {
			continue
		}

		name := fmt.Sprintf("page%d_img%d", pageNumber, i)
		dataURL, err := imageObjectToDataURL(instance, objResp.PageObject)
		if err != nil {
			log.Printf("dropping image %s: %v", name, err)
			continue
		}

		images = append(images, RasterImage{
			DataURL: dataURL,
			Name:    name,
		})
	}

	return images
}

// imageObjectToDataURL decodes an image object's bitmap and re-encodes it as
// a PNG data URL.
func imageObjectToDataURL(instance pdfium.Pdfium, obj references.FPDF_PAGEOBJECT) (string, error) {
	bitmapResp, err := instance.FPDFImageObj_GetBitmap(&requests.FPDFImageObj_GetBitmap{
		ImageObject: obj,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get image bitmap")
	}
	defer instance.FPDFBitmap_Destroy(&requests.FPDFBitmap_Destroy{
		Bitmap: bitmapResp.Bitmap,
	})

	widthResp, err := instance.FPDFBitmap_GetWidth(&requests.FPDFBitmap_GetWidth{
		Bitmap: bitmapResp.Bitmap,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bitmap width")
	}

	heightResp, err := instance.FPDFBitmap_GetHeight(&requests.FPDFBitmap_GetHeight{
		Bitmap: bitmapResp.Bitmap,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bitmap height")
	}

	strideResp, err := instance.FPDFBitmap_GetStride(&requests.FPDFBitmap_GetStride{
		Bitmap: bitmapResp.Bitmap,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bitmap stride")
	}

	formatResp, err := instance.FPDFBitmap_GetFormat(&requests.FPDFBitmap_GetFormat{
		Bitmap: bitmapResp.Bitmap,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bitmap format")
	}

	bufferResp, err := instance.FPDFBitmap_GetBuffer(&requests.FPDFBitmap_GetBuffer{
		Bitmap: bitmapResp.Bitmap,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bitmap buffer")
	}

	img, err := bitmapToImage(bufferResp.Buffer, widthResp.Width, heightResp.Height, strideResp.Stride, formatResp.Format)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", errors.Wrap(err, "failed to encode PNG")
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// bitmapToImage converts a raw pdfium pixel buffer to an NRGBA image.
func bitmapToImage(buffer []byte, width, height, stride int, format enums.FPDF_BITMAP_FORMAT) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid bitmap dimensions %dx%d", width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		row := y * stride
		for x := 0; x < width; x++ {
			var r, g, b, a uint8

			switch format {
			case enums.FPDF_BITMAP_FORMAT_BGRA:
				off := row + x*4
				if off+3 >= len(buffer) {
					return nil, errors.New("bitmap buffer too short")
				}
				b, g, r, a = buffer[off], buffer[off+1], buffer[off+2], buffer[off+3]
			case enums.FPDF_BITMAP_FORMAT_BGRX:
				off := row + x*4
				if off+3 >= len(buffer) {
					return nil, errors.New("bitmap buffer too short")
				}
				b, g, r, a = buffer[off], buffer[off+1], buffer[off+2], 255
			case enums.FPDF_BITMAP_FORMAT_BGR:
				off := row + x*3
				if off+2 >= len(buffer) {
					return nil, errors.New("bitmap buffer too short")
				}
				b, g, r, a = buffer[off], buffer[off+1], buffer[off+2], 255
			case enums.FPDF_BITMAP_FORMAT_GRAY:
				off := row + x
				if off >= len(buffer) {
					return nil, errors.New("bitmap buffer too short")
				}
				v := buffer[off]
				r, g, b, a = v, v, v, 255
			default:
				return nil, errors.Errorf("unsupported bitmap format %d", format)
			}

			off := img.PixOffset(x, y)
			img.Pix[off] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = a
		}
	}

	return img, nil
}
