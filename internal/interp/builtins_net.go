package interp

import (
	"io"
	"time"
)

// handleCurrentTime prints the current wall-clock time as HH:MM:SS.
func (i *Interpreter) handleCurrentTime(_ []string) {
	i.echo(time.Now().Format("15:04:05"))
}

// handleCurrentDate prints the current date as YYYY-MM-DD.
func (i *Interpreter) handleCurrentDate(_ []string) {
	i.echo(time.Now().Format("2006-01-02"))
}

// handleHTTPRequest performs a GET against the URL and prints the status code
// and the first 200 characters of the body. The request blocks the whole
// interpreter; the client's timeout is the only bound.
func (i *Interpreter) handleHTTPRequest(groups []string) {
	url := groups[1]
	resp, err := i.httpClient.Get(url)
	if err != nil {
		i.reportIOErr(err, "HTTP 요청 실패")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		i.reportIOErr(err, "HTTP 응답 읽기 실패")
		return
	}
	text := []rune(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	i.echof("HTTP 응답 (%d): %s...", resp.StatusCode, string(text))
}
