package doc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// TOC extracts the table of contents from an EPUB file. Entries map to
// page numbers via spine position, matching Load's pagination.
func (f *EPUBFormat) TOC(filename string) ([]TOCEntry, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]

	ncxData, err := findAndReadNCX(filename, book)
	if err != nil {
		return nil, err
	}

	var toc ncx
	if err := xml.Unmarshal(ncxData, &toc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}

	spineMap := buildSpinePageMap(book)
	return flattenNavPoints(toc.NavMap.NavPoints, spineMap, 0), nil
}

type spineInfo struct {
	page    int
	preview string
}

// buildSpinePageMap maps spine item hrefs to their page numbers and a
// short content preview.
func buildSpinePageMap(book *epub.Rootfile) map[string]spineInfo {
	m := make(map[string]spineInfo)

	for i, ref := range book.Spine.Itemrefs {
		if ref.Item == nil || ref.Item.HREF == "" {
			continue
		}

		preview := ""
		if r, err := ref.Item.Open(); err == nil {
			data, err := io.ReadAll(r)
			r.Close()
			if err == nil {
				words := strings.Fields(extractTextFromHTML(string(data)))
				if len(words) > 10 {
					words = words[:10]
				}
				if len(words) > 0 {
					preview = strings.Join(words, " ") + "..."
				}
			}
		}

		info := spineInfo{page: i + 1, preview: preview}
		m[ref.Item.HREF] = info
		m[path.Base(ref.Item.HREF)] = info
	}

	return m
}

func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}

	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}

func flattenNavPoints(points []navPoint, spineMap map[string]spineInfo, level int) []TOCEntry {
	var entries []TOCEntry

	for _, np := range points {
		href := np.Content.Src
		if idx := strings.Index(href, "#"); idx != -1 {
			href = href[:idx]
		}

		page := 1
		preview := ""
		if info, ok := spineMap[href]; ok {
			page = info.page
			preview = info.preview
		} else if info, ok := spineMap[path.Base(href)]; ok {
			page = info.page
			preview = info.preview
		}

		entries = append(entries, TOCEntry{
			Title:   strings.TrimSpace(np.Label.Text),
			Preview: preview,
			Page:    page,
			Level:   level,
		})
		if len(np.Children) > 0 {
			entries = append(entries, flattenNavPoints(np.Children, spineMap, level+1)...)
		}
	}

	return entries
}
