package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ginjaninja78/daily-report/internal/config"
	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) (*mailer.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return nil, f.err
	}
	return &mailer.Response{Status: http.StatusOK, Text: "OK"}, nil
}

type testEnv struct {
	server *Server
	http   *httptest.Server
	report *report.Report
	sender *fakeSender
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "output")
	cfg.ArchiveDir = filepath.Join(t.TempDir(), "archive")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rep := report.New(cfg.SectionSpecs(), testDate)
	sender := &fakeSender{}

	s := NewServer(cfg, rep, converter.New(cfg, logger), sender, logger)
	s.now = func() time.Time { return testDate.Add(24 * time.Hour) }

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)

	return &testEnv{server: s, http: ts, report: rep, sender: sender}
}

// noRedirect returns a client that reports redirects instead of following them.
func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func statusOf(t *testing.T, resp *http.Response) url.Values {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	return loc.Query()
}

func TestIndex(t *testing.T) {
	env := setupTestServer(t)
	require.NoError(t, env.report.Set(types.SectionPage1, 101, types.FieldName, "<Smith>"))

	resp, err := http.Get(env.http.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Page 1 - Rooms")
	assert.Contains(t, string(body), "RV / Storage")
	assert.Contains(t, string(body), `name="page1:101:name"`)
	assert.Contains(t, string(body), "&lt;Smith&gt;")
	assert.Contains(t, string(body), `value="2024-03-15"`)
}

func TestSetRowReturnsTotals(t *testing.T) {
	env := setupTestServer(t)

	resp, err := http.PostForm(env.http.URL+"/rows", url.Values{
		"section": {"page1"}, "id": {"101"}, "field": {"rent"}, "value": {"60"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got TotalsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "60.00", got.TotalSales)

	resp, err = http.PostForm(env.http.URL+"/rows", url.Values{
		"section": {"rv"}, "id": {"6"}, "field": {"rent"}, "value": {"1"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveWholeForm(t *testing.T) {
	env := setupTestServer(t)
	require.NoError(t, env.report.Set(types.SectionRV, 1, types.FieldPaid, "true"))

	resp, err := noRedirect().PostForm(env.http.URL+"/save", url.Values{
		"page1:101:rent":    {"60"},
		"page1:101:tax":     {"6"},
		"page1:101:checkin": {"on"},
		"totalCash":         {"66"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Saved", statusOf(t, resp).Get("status"))

	row, _ := env.report.Find(types.SectionPage1, 101)
	assert.True(t, row.CheckIn)
	rv, _ := env.report.Find(types.SectionRV, 1)
	assert.False(t, rv.Paid, "unchecked boxes are cleared")
	assert.Equal(t, "66.00", env.report.Summary.TotalSales)
	assert.Equal(t, "66", env.report.Summary.TotalCash)
}

func TestTotalsAndPrint(t *testing.T) {
	env := setupTestServer(t)
	require.NoError(t, env.report.Set(types.SectionPage2, 134, types.FieldMisc, "2.5"))
	require.NoError(t, env.report.Set(types.SectionPage2, 134, types.FieldBalance, "10"))

	resp, err := http.Get(env.http.URL + "/totals")
	require.NoError(t, err)
	var got TotalsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, TotalsResponse{TotalSales: "2.50", Balance: "10.00"}, got)

	resp, err = http.Get(env.http.URL + "/print")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.HasPrefix(string(body), "DAILY REPORT\n"))
	assert.Contains(t, string(body), "Total Sales: 2.50")
}

func TestExport(t *testing.T) {
	env := setupTestServer(t)

	resp, err := http.Get(env.http.URL + "/export/xlsx")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, converter.FormatXLSX.ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report.xlsx")
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))

	resp, err = http.Get(env.http.URL + "/export/pdf")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	resp, err = http.Get(env.http.URL + "/export/xml")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func multipartBody(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, _ = part.Write([]byte(content))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImport(t *testing.T) {
	env := setupTestServer(t)

	csvData := "Room No,Name,Rent,Tax,Misc,CheckIN,CheckOUT,Balance,Paid\n101,Smith,60,6,,TRUE,,,\n"
	body, contentType := multipartBody(t, "day.csv", csvData)

	resp, err := noRedirect().Post(env.http.URL+"/import", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	q := statusOf(t, resp)
	assert.Empty(t, q.Get("failed"))
	assert.Contains(t, q.Get("status"), "Imported 1 rows")

	row, _ := env.report.Find(types.SectionPage1, 101)
	assert.Equal(t, "Smith", row.Name)
	assert.Equal(t, "66.00", env.report.Summary.TotalSales)
}

func TestImportNoFileIsNoop(t *testing.T) {
	env := setupTestServer(t)
	require.NoError(t, env.report.Set(types.SectionPage1, 101, types.FieldRent, "5"))

	body, contentType := multipartBody(t, "", "")
	resp, err := noRedirect().Post(env.http.URL+"/import", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()

	q := statusOf(t, resp)
	assert.Equal(t, converter.ErrNoFile.Error(), q.Get("status"))
	assert.Empty(t, q.Get("failed"))
	assert.Equal(t, "5.00", env.report.Summary.TotalSales)
}

func TestImportBadFile(t *testing.T) {
	env := setupTestServer(t)

	body, contentType := multipartBody(t, "notes.txt", "hello")
	resp, err := noRedirect().Post(env.http.URL+"/import", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "1", statusOf(t, resp).Get("failed"))
}

func TestEmail(t *testing.T) {
	env := setupTestServer(t)

	resp, err := noRedirect().Post(env.http.URL+"/email", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Email sent successfully!", statusOf(t, resp).Get("status"))

	require.Len(t, env.sender.sent, 1)
	assert.Contains(t, env.sender.sent[0].Body, "SUMMARY\n")
}

func TestEmailFailureShowsPayload(t *testing.T) {
	env := setupTestServer(t)
	env.sender.err = &mailer.SendError{Status: http.StatusBadRequest, Payload: "The user ID is invalid"}

	resp, err := noRedirect().Post(env.http.URL+"/email", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	q := statusOf(t, resp)
	assert.Equal(t, "1", q.Get("failed"))
	assert.Equal(t, "Failed to send email: The user ID is invalid", q.Get("status"))
}

func TestClear(t *testing.T) {
	env := setupTestServer(t)
	require.NoError(t, env.report.Set(types.SectionPage1, 101, types.FieldRent, "60"))
	require.NoError(t, env.report.SetSummary(types.SummaryTotalCash, "60"))

	resp, err := noRedirect().Post(env.http.URL+"/clear", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, "0.00", env.report.Summary.TotalSales)
	assert.Empty(t, env.report.Summary.TotalCash)
	assert.Equal(t, "2024-03-16", env.report.Summary.Date)
	assert.Equal(t, "Saturday", env.report.Summary.Day)
	assert.Len(t, env.report.Rows(), 50)
}

func TestConcurrentEdits(t *testing.T) {
	env := setupTestServer(t)

	var wg sync.WaitGroup
	for _, id := range []string{"101", "102", "103", "104", "105", "106", "107", "108"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			resp, err := http.PostForm(env.http.URL+"/rows", url.Values{
				"section": {"page1"}, "id": {id}, "field": {"rent"}, "value": {"10"},
			})
			if err == nil {
				resp.Body.Close()
			}
		}(id)
	}
	wg.Wait()

	resp, err := http.Get(env.http.URL + "/totals")
	require.NoError(t, err)
	defer resp.Body.Close()
	var got TotalsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "80.00", got.TotalSales)
}
