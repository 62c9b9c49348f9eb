package main

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"time"
)

type IssueSearch struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

type IssueFields struct {
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

type ScanRecord struct {
	IP       string `json:"ip"`
	QID      int    `json:"qid"`
	Severity int    `json:"severity"`
	Title    string `json:"title"`
}

const scanListXML = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE SCAN_LIST_OUTPUT SYSTEM "https://qualysapi.qualys.com/api/2.0/fo/scan/scan_list_output.dtd">
<SCAN_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>%s</DATETIME>
    <SCAN_LIST>
      <SCAN>
        <REF>scan/1709287200.11111</REF>
        <TYPE>On-Demand</TYPE>
        <TITLE><![CDATA[Weekly perimeter]]></TITLE>
        <STATUS><STATE>Finished</STATE></STATUS>
      </SCAN>
      <SCAN>
        <REF>scan/1709287200.22222</REF>
        <TYPE>Scheduled</TYPE>
        <TITLE><![CDATA[Internal subnet]]></TITLE>
        <STATUS><STATE>Finished</STATE></STATUS>
      </SCAN>
    </SCAN_LIST>
  </RESPONSE>
</SCAN_LIST_OUTPUT>`

const vulnInfoXML = `<?xml version="1.0" encoding="UTF-8" ?>
<KNOWLEDGE_BASE_VULN_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>%s</DATETIME>
    <VULN_LIST>
      <VULN>
        <QID>%s</QID>
        <VULN_TYPE>Vulnerability</VULN_TYPE>
        <SEVERITY_LEVEL>2</SEVERITY_LEVEL>
        <TITLE><![CDATA[SSL Certificate - Subject Common Name Does Not Match Server FQDN]]></TITLE>
      </VULN>
    </VULN_LIST>
  </RESPONSE>
</KNOWLEDGE_BASE_VULN_LIST_OUTPUT>`

func main() {
	http.HandleFunc("/rest/api/2/search", requireAuth(handleSearch))
	http.HandleFunc("/api/2.0/fo/scan", requireAuth(handleScan))
	http.HandleFunc("/api/2.0/fo/scan/", requireAuth(handleScan))
	http.HandleFunc("/api/2.0/fo/knowledge_base/vuln/", requireAuth(handleVuln))

	fmt.Println("Mock Jira/Qualys API server running on http://localhost:8080")
	fmt.Println(`Build the CLI against it with:
  go build -ldflags "-X github.com/ohs-security/ohs-cli/internal/api.IssueTrackerBaseURL=http://localhost:8080/ \
    -X github.com/ohs-security/ohs-cli/internal/api.ScannerBaseURL=http://localhost:8080/" ./cmd/ohs-cli`)
	server := &http.Server{
		Addr:              ":8080",
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="mock"`)
			http.Error(w, "Missing basic authorization", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(IssueSearch{
		MaxResults: 50,
		Total:      2,
		Issues: []Issue{
			{Key: "OHS-1", Fields: IssueFields{Summary: "Rotate TLS certificate on edge proxy", Status: "Open"}},
			{Key: "OHS-2", Fields: IssueFields{Summary: "Patch OpenSSH on bastion", Status: "In Progress"}},
		},
	})
}

func handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("X-Requested-With") == "" {
		http.Error(w, "X-Requested-With header is required", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	switch r.PostForm.Get("action") {
	case "list":
		w.Header().Set("Content-Type", "text/xml")
		_, _ = fmt.Fprintf(w, scanListXML, time.Now().UTC().Format(time.RFC3339))
	case "fetch":
		ref := r.PostForm.Get("scan_ref")
		if !strings.HasPrefix(ref, "scan/") {
			http.Error(w, "Invalid scan_ref", http.StatusBadRequest)
			return
		}
		// Large reports trickle in slowly.
		time.Sleep(2 * time.Second)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]ScanRecord{
			{IP: "10.0.0.1", QID: 38170, Severity: 2, Title: "SSL Certificate - Subject Common Name Does Not Match Server FQDN"},
			{IP: "10.0.0.7", QID: 105943, Severity: 3, Title: "EOL/Obsolete Software: OpenSSH Detected"},
		})
	default:
		http.Error(w, "Unsupported action", http.StatusBadRequest)
	}
}

func handleVuln(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	ids := r.PostForm.Get("ids")
	if r.PostForm.Get("action") != "list" || ids == "" {
		http.Error(w, "action=list and ids are required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	_, _ = fmt.Fprintf(w, vulnInfoXML, time.Now().UTC().Format(time.RFC3339), html.EscapeString(ids))
}
