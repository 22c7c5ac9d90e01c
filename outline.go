package pdfhtml

import (
	"strings"

	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
)

// readOutline walks the document's bookmark tree and resolves every entry to
// an OutlineTarget. It returns nil when the document has no outline. Pages
// must already be extracted: destination Y coordinates are converted to
// viewport space against the target page's height. startPage is the absolute
// 0-based index of pages[0], so a range conversion can resolve destinations
// against its extracted window; recorded PageIndex values stay absolute.
//
// Every per-node failure degrades that single node to its title-fallback
// form; nothing here aborts the walk.
func (c *Converter) readOutline(doc references.FPDF_DOCUMENT, pages []Page, startPage int) []OutlineTarget {
	first, err := c.instance.FPDFBookmark_GetFirstChild(&requests.FPDFBookmark_GetFirstChild{
		Document: doc,
	})
	if err != nil || first.Bookmark == nil {
		return nil
	}
	return c.walkBookmarks(doc, *first.Bookmark, 1, pages, startPage)
}

// walkBookmarks resolves a bookmark and its siblings, recursing into
// children pre-order. Each recursion returns its subtree's targets; the
// caller concatenates, so no collection is shared across stack frames. The
// heading level grows with nesting depth, capped at MaxOutlineDepth.
func (c *Converter) walkBookmarks(doc references.FPDF_DOCUMENT, bookmark references.FPDF_BOOKMARK, level int, pages []Page, startPage int) []OutlineTarget {
	var targets []OutlineTarget

	for {
		if target, ok := c.resolveBookmark(doc, bookmark, level, pages, startPage); ok {
			targets = append(targets, target)
		}

		child, err := c.instance.FPDFBookmark_GetFirstChild(&requests.FPDFBookmark_GetFirstChild{
			Document: doc,
			Bookmark: &bookmark,
		})
		if err == nil && child.Bookmark != nil {
			childLevel := level + 1
			if childLevel > c.config.MaxOutlineDepth {
				childLevel = c.config.MaxOutlineDepth
			}
			targets = append(targets, c.walkBookmarks(doc, *child.Bookmark, childLevel, pages, startPage)...)
		}

		sibling, err := c.instance.FPDFBookmark_GetNextSibling(&requests.FPDFBookmark_GetNextSibling{
			Document: doc,
			Bookmark: bookmark,
		})
		if err != nil || sibling.Bookmark == nil {
			return targets
		}
		bookmark = *sibling.Bookmark
	}
}

// resolveBookmark resolves one bookmark to a position target, or to a title
// fallback when it has no destination or the destination cannot be resolved.
// Nodes with neither a resolvable destination nor a title are skipped.
func (c *Converter) resolveBookmark(doc references.FPDF_DOCUMENT, bookmark references.FPDF_BOOKMARK, level int, pages []Page, startPage int) (OutlineTarget, bool) {
	var title string
	if titleResp, err := c.instance.FPDFBookmark_GetTitle(&requests.FPDFBookmark_GetTitle{
		Bookmark: bookmark,
	}); err == nil {
		title = strings.TrimSpace(titleResp.Title)
	}

	if dest := c.bookmarkDest(doc, bookmark); dest != nil {
		if pageIndex, y, ok := c.resolveDest(doc, *dest, pages, startPage); ok {
			return OutlineTarget{
				Level:       level,
				PageIndex:   pageIndex,
				Y:           y,
				Title:       title,
				HasPosition: true,
			}, true
		}
	}

	if title == "" {
		return OutlineTarget{}, false
	}
	return OutlineTarget{Level: level, Title: title}, true
}

// bookmarkDest returns a bookmark's destination, following a goto action
// when the bookmark has no direct destination.
func (c *Converter) bookmarkDest(doc references.FPDF_DOCUMENT, bookmark references.FPDF_BOOKMARK) *references.FPDF_DEST {
	destResp, err := c.instance.FPDFBookmark_GetDest(&requests.FPDFBookmark_GetDest{
		Document: doc,
		Bookmark: bookmark,
	})
	if err == nil && destResp.Dest != nil {
		return destResp.Dest
	}

	actionResp, err := c.instance.FPDFBookmark_GetAction(&requests.FPDFBookmark_GetAction{
		Bookmark: bookmark,
	})
	if err != nil || actionResp.Action == nil {
		return nil
	}

	actionDest, err := c.instance.FPDFAction_GetDest(&requests.FPDFAction_GetDest{
		Document: doc,
		Action:   *actionResp.Action,
	})
	if err != nil || actionDest.Dest == nil {
		return nil
	}
	return actionDest.Dest
}

// resolveDest maps a destination to an absolute 0-based page index and a
// viewport Y. The destination index reported by pdfium is absolute, so it is
// shifted by startPage before bounds-checking and indexing the extracted
// window; destinations outside the window cannot be converted (their page
// height was never read) and fail resolution. Destinations without a Y
// coordinate resolve to the top of the page.
func (c *Converter) resolveDest(doc references.FPDF_DOCUMENT, dest references.FPDF_DEST, pages []Page, startPage int) (int, float64, bool) {
	indexResp, err := c.instance.FPDFDest_GetDestPageIndex(&requests.FPDFDest_GetDestPageIndex{
		Document: doc,
		Dest:     dest,
	})
	if err != nil {
		return 0, 0, false
	}

	rel := indexResp.Index - startPage
	if rel < 0 || rel >= len(pages) {
		return 0, 0, false
	}

	y := 0.0
	if loc, err := c.instance.FPDFDest_GetLocationInPage(&requests.FPDFDest_GetLocationInPage{
		Dest: dest,
	}); err == nil && loc.Y != nil {
		// Destination coordinates have their origin at the page bottom.
		y = pages[rel].Height - float64(*loc.Y)
	}

	return indexResp.Index, y, true
}
