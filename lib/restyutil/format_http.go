package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

func writeHeaders(b *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(b, "%s: %s\n", k, v)
		}
	}
}

func requestBody(req *http.Request) string {
	// GetBody is nil on bodyless requests, which is every GET the
	// scraper makes
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("<failed to get request body: %s>", err)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("<failed to read request body: %s>", err)
	}
	return string(raw)
}

// formatExchange renders a finished request/response pair roughly the
// way it went over the wire, headers sorted so dumps diff cleanly.
func formatExchange(res *resty.Response) string {
	var b strings.Builder
	req := res.Request

	fmt.Fprintf(&b, ">>> %s %s\n", req.Method, req.URL)
	writeHeaders(&b, req.RawRequest.Header)
	if body := requestBody(req.RawRequest); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n<<< %s\n", res.Status())
	writeHeaders(&b, res.Header())
	b.WriteString("\n")
	b.WriteString(res.String())
	return b.String()
}
