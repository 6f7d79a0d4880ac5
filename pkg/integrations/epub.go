package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"

	"github.com/kerbaras/storytime/pkg/story"
)

const bookCSS = `body { font-family: serif; }
.page { page-break-after: always; text-align: center; }
.page img { width: 100%; height: auto; }
.page p { font-size: 1.3em; line-height: 1.5; margin: 1em; }`

type EPubBuilder struct {
	outputDir string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

// Build writes s as an EPUB with one section per page. images holds the
// rendered illustration for each page, matched by Index.
func (b *EPubBuilder) Build(s *story.Story, images []ImageData) (string, error) {
	if s == nil || len(s.Pages) == 0 {
		return "", story.ErrEmptyStory
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	workDir, err := os.MkdirTemp("", "storytime-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	e, err := epub.NewEpub(s.Title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("Story Time")
	e.SetLang("en")
	e.SetIdentifier("urn:uuid:" + s.ID)
	e.SetDescription(fmt.Sprintf("A %s %s story in the %s with %s.",
		strings.ToLower(s.Prompt.Mood), strings.ToLower(s.Prompt.Theme),
		strings.ToLower(s.Prompt.Setting), strings.Join(s.Prompt.Characters, ", ")))

	cssPath := filepath.Join(workDir, "book.css")
	if err := os.WriteFile(cssPath, []byte(bookCSS), 0644); err != nil {
		return "", fmt.Errorf("failed to write stylesheet: %w", err)
	}
	css, err := e.AddCSS(cssPath, "book.css")
	if err != nil {
		return "", fmt.Errorf("failed to add stylesheet: %w", err)
	}

	byIndex := make(map[int]ImageData, len(images))
	for _, img := range images {
		byIndex[img.Index] = img
	}

	for i, page := range s.Pages {
		src := ""
		if img, ok := byIndex[i]; ok && len(img.Content) > 0 {
			name := fmt.Sprintf("page%03d%s", page.Number, img.Extension())
			path := filepath.Join(workDir, name)
			if err := os.WriteFile(path, img.Content, 0644); err != nil {
				return "", fmt.Errorf("failed to write page %d image: %w", page.Number, err)
			}
			if src, err = e.AddImage(path, name); err != nil {
				return "", fmt.Errorf("failed to add page %d image: %w", page.Number, err)
			}
			if i == 0 {
				if err := e.SetCover(src, ""); err != nil {
					return "", fmt.Errorf("failed to set cover: %w", err)
				}
			}
		}

		if _, err := e.AddSection(pageHTML(s, page, src), fmt.Sprintf("Page %d", page.Number), "", css); err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", page.Number, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, Filename(s))
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

func pageHTML(s *story.Story, page story.Page, img string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="page">`)
	if page.Number == 1 {
		fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(s.Title))
	}
	if img != "" {
		fmt.Fprintf(&sb, `<img src="%s" alt="Page %d"/>`+"\n", img, page.Number)
	}
	fmt.Fprintf(&sb, "<p>%s</p></div>", html.EscapeString(page.Text))
	return sb.String()
}

// Filename is the EPUB file name used for s.
func Filename(s *story.Story) string {
	name := sanitizeFilename(s.Title)
	if name == "" {
		name = "story"
	}
	if len(s.ID) >= 8 {
		name += "-" + s.ID[:8]
	}
	return name + ".epub"
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
