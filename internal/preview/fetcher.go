package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const maxBodyBytes = 1 << 20 // previews only need the head

// fetchDocument downloads a page and extracts its Open Graph properties
// plus the <title> fallback.
func fetchDocument(ctx context.Context, client *http.Client, rawURL string) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("preview fetch returned %d", res.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	props := make(map[string]string)
	collectMeta(doc, props)
	return props, nil
}

func collectMeta(node *html.Node, props map[string]string) {
	if node.Type == html.ElementNode {
		switch node.Data {
		case "meta":
			var property, content string
			for _, attr := range node.Attr {
				switch attr.Key {
				case "property", "name":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if strings.HasPrefix(property, "og:") && content != "" {
				props[property] = content
			}
		case "title":
			if node.FirstChild != nil && node.FirstChild.Type == html.TextNode {
				if _, ok := props["title"]; !ok {
					props["title"] = strings.TrimSpace(node.FirstChild.Data)
				}
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectMeta(child, props)
	}
}
