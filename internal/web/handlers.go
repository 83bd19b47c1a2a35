package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/ginjaninja78/daily-report/internal/render"
	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/ginjaninja78/daily-report/internal/totals"
	"github.com/ginjaninja78/daily-report/internal/types"
	"github.com/go-chi/chi/v5"
)

// ErrorResponse is the JSON body of a failed API call.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// TotalsResponse is the JSON body of /totals and /rows.
type TotalsResponse struct {
	TotalSales string `json:"total_sales"`
	Balance    string `json:"balance"`
}

var summaryLabels = map[types.SummaryField]string{
	types.SummaryDate:        "Date",
	types.SummaryDay:         "Day",
	types.SummaryTotalCash:   "Total Cash",
	types.SummaryTotalCredit: "Total Credit",
	types.SummaryBankDeposit: "Bank Deposit",
	types.SummaryMisc2:       "#2 Misc",
	types.SummaryOpenAccount: "Open Acct",
	types.SummaryPIANumber:   "PIA #",
}

// =============================================================================
// PAGE
// =============================================================================

type pageData struct {
	Status     string
	Failed     bool
	Summary    []summaryInput
	TotalSales string
	Header     []string
	Sections   []sectionView
}

type summaryInput struct {
	Name  string
	Label string
	Value string
}

type sectionView struct {
	Label string
	Rows  []rowView
}

type rowView struct {
	ID    int
	Cells []cellView
}

type cellView struct {
	Name    string
	Value   string
	Flag    bool
	Checked bool
}

// inputName is the form name of one row field.
func inputName(section types.Section, id int, f types.Field) string {
	return fmt.Sprintf("%s:%d:%s", section, id, f.Key())
}

func buildPage(rep *report.Report, query url.Values) pageData {
	data := pageData{
		Status:     query.Get("status"),
		Failed:     query.Get("failed") != "",
		TotalSales: rep.Summary.TotalSales,
		Header:     types.Header,
	}

	for _, field := range types.SummaryFields {
		data.Summary = append(data.Summary, summaryInput{
			Name:  string(field),
			Label: summaryLabels[field],
			Value: rep.Summary.Get(field),
		})
	}

	for _, section := range rep.Sections() {
		view := sectionView{Label: section.Label}
		for _, row := range section.Rows {
			rv := rowView{ID: row.ID}
			for _, f := range types.Fields() {
				if f == types.FieldIdentifier {
					continue
				}
				cell := cellView{Name: inputName(row.Section, row.ID, f), Flag: f.IsFlag()}
				if cell.Flag {
					cell.Checked = row.Flag(f)
				} else {
					cell.Value = row.Text(f)
				}
				rv.Cells = append(rv.Cells, cell)
			}
			view.Rows = append(view.Rows, rv)
		}
		data.Sections = append(data.Sections, view)
	}

	return data
}

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := buildPage(s.report, r.URL.Query())
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("failed to render form", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// =============================================================================
// EDITS
// =============================================================================

// handleSave handles POST /save. The request carries the whole form: every
// text field and a value for each checked flag. Unchecked flags are absent
// and therefore cleared.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	for _, row := range s.report.Rows() {
		for _, f := range types.Fields() {
			if f == types.FieldIdentifier {
				continue
			}
			name := inputName(row.Section, row.ID, f)
			if f.IsFlag() {
				row.SetFlag(f, r.PostForm.Has(name))
				continue
			}
			if r.PostForm.Has(name) {
				row.SetText(f, r.PostForm.Get(name))
			}
		}
	}
	applySummary(s.report, r.PostForm)
	total := s.report.Recalculate()
	s.mu.Unlock()

	s.logger.Info("form saved", "total_sales", total)
	redirect(w, r, "Saved", false)
}

// handleSetRow handles POST /rows, a single field edit. It responds with
// the recomputed totals.
func (s *Server) handleSetRow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	section, err := types.ParseSection(r.PostForm.Get("section"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	id, err := strconv.Atoi(r.PostForm.Get("id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id")
		return
	}
	field, err := types.ParseField(r.PostForm.Get("field"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	s.mu.Lock()
	err = s.report.Set(section, id, field, r.PostForm.Get("value"))
	resp := totalsOf(s.report)
	s.mu.Unlock()

	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSummary handles POST /summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	applySummary(s.report, r.PostForm)
	s.mu.Unlock()

	redirect(w, r, "Summary saved", false)
}

func applySummary(rep *report.Report, form url.Values) {
	for _, field := range types.SummaryFields {
		if form.Has(string(field)) {
			_ = rep.SetSummary(field, form.Get(string(field)))
		}
	}
}

// handleTotals handles GET /totals
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := totalsOf(s.report)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func totalsOf(rep *report.Report) TotalsResponse {
	return TotalsResponse{
		TotalSales: rep.Summary.TotalSales,
		Balance:    totals.Balance(rep.Rows()),
	}
}

// handleClear handles POST /clear
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.report.Clear(s.now())
	s.mu.Unlock()

	s.logger.Info("report cleared")
	redirect(w, r, "Form cleared", false)
}

// =============================================================================
// IMPORT / EXPORT
// =============================================================================

// handleImport handles POST /import. Choosing no file leaves the report
// unchanged.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		redirect(w, r, "Failed to read upload: "+err.Error(), true)
		return
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		redirect(w, r, converter.ErrNoFile.Error(), false)
		return
	}
	if err != nil {
		redirect(w, r, "Failed to read upload: "+err.Error(), true)
		return
	}
	defer file.Close()

	s.mu.Lock()
	result := s.converter.Import(s.report, file, header.Filename)
	s.mu.Unlock()

	if result.Error != nil {
		s.logger.Warn("import failed", "file", header.Filename, "error", result.Error)
		redirect(w, r, result.Error.Error(), true)
		return
	}

	redirect(w, r, fmt.Sprintf("Imported %d rows from %s", result.Stats.RowsFilled, header.Filename), false)
}

// handleExport handles GET /export/{format}
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := converter.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	s.mu.Lock()
	err = s.converter.Encode(&buf, s.report, format)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("export failed", "format", string(format), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.converter.FileName(format)))
	_, _ = w.Write(buf.Bytes())
}

// handlePrint handles GET /print, the plain-text rendering.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	text := render.Text(s.report)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

// =============================================================================
// E-MAIL
// =============================================================================

// handleEmail handles POST /email. A failure shows the service's response
// payload to the operator.
func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	msg := s.converter.Message(s.report)
	s.mu.Unlock()

	if _, err := s.sender.Send(r.Context(), msg); err != nil {
		s.logger.Warn("email failed", "error", err)
		redirect(w, r, "Failed to send email: "+failurePayload(err), true)
		return
	}

	redirect(w, r, "Email sent successfully!", false)
}

func failurePayload(err error) string {
	var sendErr *mailer.SendError
	if errors.As(err, &sendErr) && sendErr.Payload != "" {
		return sendErr.Payload
	}
	return err.Error()
}

// =============================================================================
// HELPERS
// =============================================================================

func redirect(w http.ResponseWriter, r *http.Request, status string, failed bool) {
	q := url.Values{}
	q.Set("status", strings.TrimSpace(status))
	if failed {
		q.Set("failed", "1")
	}
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, error, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            error,
		ErrorDescription: description,
	})
}
