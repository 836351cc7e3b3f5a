package app

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"covenant/api/internal/store"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
	adminToken string
}

func NewHTTPServer(service *Service, corsOrigin, adminToken string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin, adminToken: adminToken}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"database": map[string]any{"status": "ok"},
		}

		if err := s.service.Ping(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["database"] = map[string]any{
				"status": "error",
				"error":  err.Error(),
			}
		}

		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	parts := splitPath(r.URL.Path)
	if len(parts) < 2 || parts[0] != "api" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}

	switch parts[1] {
	case "legal":
		s.handleLegal(w, r, parts[2:])
	case "admin":
		s.handleAdmin(w, r, parts[2:])
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

// handleLegal serves the user-facing surface: current version lookup,
// compliance check, acceptance recording and the gate redirect.
func (s *HTTPServer) handleLegal(w http.ResponseWriter, r *http.Request, parts []string) {
	// GET /api/legal/documents/{slug}/current
	if r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "documents" && parts[2] == "current" {
		s.handleCurrentVersion(w, r, parts[1])
		return
	}

	if r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "compliance" {
		s.handleCompliance(w, r)
		return
	}

	if r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "accept" {
		s.handleAccept(w, r)
		return
	}

	if r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "gate" {
		s.handleGate(w, r)
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func (s *HTTPServer) handleCurrentVersion(w http.ResponseWriter, r *http.Request, slug string) {
	doc, version, err := s.service.CurrentVersion(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	payload := map[string]any{
		"document": documentPayload(doc),
		"version":  nil,
	}
	if version != nil {
		payload["version"] = versionPayload(*version)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handleCompliance(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header is required", nil)
		return
	}

	compliant, missing, err := s.service.CheckUserLegalCompliance(r.Context(), userID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"compliant":     compliant,
		"missing":       versionPayloads(missing),
		"acceptanceUrl": s.service.AcceptanceURL(),
	})
}

func (s *HTTPServer) handleAccept(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header is required", nil)
		return
	}

	var body struct {
		VersionIDs []int64 `json:"versionIds"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}

	// No explicit ids means accept everything currently missing, the way
	// the acceptance gate form submits.
	versionIDs := body.VersionIDs
	if len(versionIDs) == 0 {
		_, missing, err := s.service.CheckUserLegalCompliance(r.Context(), userID)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		for _, version := range missing {
			versionIDs = append(versionIDs, version.ID)
		}
	}

	ip := clientIP(r)
	userAgent := r.Header.Get("User-Agent")

	accepted := make([]map[string]any, 0, len(versionIDs))
	for _, versionID := range versionIDs {
		acceptance, err := s.service.RecordAcceptance(r.Context(), userID, versionID, ip, userAgent)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		accepted = append(accepted, acceptancePayload(acceptance))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
	})
}

// handleGate is the compliance gate: compliant (or anonymous) requests are
// sent on to their destination, everyone else to the acceptance URL with
// the destination preserved in the next parameter.
func (s *HTTPServer) handleGate(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if next == "" {
		next = "/"
	}

	// Authentication belongs to the host application; an anonymous
	// request falls through to its destination.
	userID := requestUserID(r)
	if userID == "" {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}

	compliant, _, err := s.service.CheckUserLegalCompliance(r.Context(), userID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	if compliant {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}
	http.Redirect(w, r, s.service.GateRedirect(next), http.StatusFound)
}

// handleAdmin serves document and section management. Every route requires
// the admin bearer token; every section mutation is followed by a
// reconcile so content changes become versions without a manual publish.
func (s *HTTPServer) handleAdmin(w http.ResponseWriter, r *http.Request, parts []string) {
	if !s.authorizedAdmin(r) {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Admin token required", nil)
		return
	}

	if len(parts) == 1 && parts[0] == "documents" {
		switch r.Method {
		case http.MethodPost:
			s.handleCreateDocument(w, r)
		case http.MethodGet:
			s.handleListDocuments(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		}
		return
	}

	if len(parts) == 2 && parts[0] == "documents" {
		slug := parts[1]
		switch r.Method {
		case http.MethodGet:
			s.handleGetDocument(w, r, slug)
		case http.MethodPatch:
			s.handleUpdateDocument(w, r, slug)
		case http.MethodDelete:
			s.handleDeleteDocument(w, r, slug)
		default:
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		}
		return
	}

	if len(parts) == 3 && parts[0] == "documents" {
		slug := parts[1]
		switch {
		case r.Method == http.MethodPost && parts[2] == "sections":
			s.handleAddSection(w, r, slug)
		case r.Method == http.MethodPost && parts[2] == "publish":
			s.handlePublish(w, r, slug)
		case r.Method == http.MethodPost && parts[2] == "reconcile":
			s.handleReconcile(w, r, slug)
		case r.Method == http.MethodGet && parts[2] == "versions":
			s.handleListVersions(w, r, slug)
		case r.Method == http.MethodGet && parts[2] == "snapshot":
			s.handleSnapshotPreview(w, r, slug)
		default:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		}
		return
	}

	if len(parts) == 2 && parts[0] == "sections" {
		sectionID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "section id must be an integer", nil)
			return
		}
		switch r.Method {
		case http.MethodPatch:
			s.handleUpdateSection(w, r, sectionID)
		case http.MethodDelete:
			s.handleDeleteSection(w, r, sectionID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		}
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func (s *HTTPServer) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var body struct {
		HumanName  string `json:"humanName"`
		Slug       string `json:"slug"`
		IsRequired bool   `json:"isRequired"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}

	doc, err := s.service.CreateDocument(r.Context(), body.HumanName, body.Slug, body.IsRequired)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusCreated, documentPayload(doc))
}

func (s *HTTPServer) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := s.service.ListDocuments(r.Context())
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	items := make([]map[string]any, 0, len(documents))
	for _, doc := range documents {
		items = append(items, documentPayload(doc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": items})
}

func (s *HTTPServer) handleGetDocument(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	sections, err := s.service.ListSections(r.Context(), doc.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	_, latest, err := s.service.CurrentVersion(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	payload := map[string]any{
		"document": documentPayload(doc),
		"sections": sectionPayloads(sections),
		"version":  nil,
	}
	if latest != nil {
		payload["version"] = versionPayload(*latest)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handleUpdateDocument(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	body := struct {
		HumanName  string `json:"humanName"`
		IsRequired *bool  `json:"isRequired"`
	}{HumanName: doc.HumanName}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	isRequired := doc.IsRequired
	if body.IsRequired != nil {
		isRequired = *body.IsRequired
	}

	if err := s.service.UpdateDocument(r.Context(), doc.ID, body.HumanName, isRequired); err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleDeleteDocument(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	if err := s.service.DeleteDocument(r.Context(), doc.ID); err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *HTTPServer) handleAddSection(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	var body struct {
		Heading   string `json:"heading"`
		Body      string `json:"body"`
		SortOrder int    `json:"sortOrder"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}

	section, err := s.service.AddSection(r.Context(), doc.ID, body.Heading, body.Body, body.SortOrder)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	version, err := s.service.ReconcileDocument(r.Context(), doc.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	payload := map[string]any{
		"section": sectionPayload(section),
		"version": nil,
	}
	if version != nil {
		payload["version"] = versionPayload(*version)
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (s *HTTPServer) handleUpdateSection(w http.ResponseWriter, r *http.Request, sectionID int64) {
	section, err := s.service.GetSection(r.Context(), sectionID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	body := struct {
		Heading   string `json:"heading"`
		Body      string `json:"body"`
		SortOrder *int   `json:"sortOrder"`
	}{Heading: section.Heading, Body: section.Body}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	sortOrder := section.SortOrder
	if body.SortOrder != nil {
		sortOrder = *body.SortOrder
	}

	if err := s.service.UpdateSection(r.Context(), sectionID, body.Heading, body.Body, sortOrder); err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	version, err := s.service.ReconcileDocument(r.Context(), section.DocumentID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	payload := map[string]any{"ok": true, "version": nil}
	if version != nil {
		payload["version"] = versionPayload(*version)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handleDeleteSection(w http.ResponseWriter, r *http.Request, sectionID int64) {
	section, err := s.service.GetSection(r.Context(), sectionID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	if err := s.service.DeleteSection(r.Context(), sectionID); err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	version, err := s.service.ReconcileDocument(r.Context(), section.DocumentID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	payload := map[string]any{"ok": true, "version": nil}
	if version != nil {
		payload["version"] = versionPayload(*version)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handlePublish(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	version, err := s.service.PublishNewVersion(r.Context(), doc.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusCreated, versionPayload(version))
}

func (s *HTTPServer) handleReconcile(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	version, err := s.service.ReconcileDocument(r.Context(), doc.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	if version == nil {
		writeJSON(w, http.StatusOK, map[string]any{"published": false, "version": nil})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"published": true, "version": versionPayload(*version)})
}

func (s *HTTPServer) handleListVersions(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	versions, err := s.service.store.ListVersions(r.Context(), doc.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"versions": versionPayloads(versions)})
}

func (s *HTTPServer) handleSnapshotPreview(w http.ResponseWriter, r *http.Request, slug string) {
	doc, err := s.service.GetDocumentBySlug(r.Context(), slug)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	snapshot, err := s.service.BuildCurrentSnapshot(r.Context(), doc.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshot": snapshot})
}

func (s *HTTPServer) authorizedAdmin(r *http.Request) bool {
	token := bearerToken(r)
	return token != "" && token == s.adminToken
}

func requestUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}

// clientIP prefers the first hop recorded by the host's proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func documentPayload(doc store.Document) map[string]any {
	return map[string]any{
		"id":         doc.ID,
		"humanName":  doc.HumanName,
		"slug":       doc.Slug,
		"isRequired": doc.IsRequired,
		"createdAt":  doc.CreatedAt,
		"updatedAt":  doc.UpdatedAt,
	}
}

func sectionPayload(section store.Section) map[string]any {
	return map[string]any{
		"id":         section.ID,
		"documentId": section.DocumentID,
		"heading":    section.Heading,
		"body":       section.Body,
		"sortOrder":  section.SortOrder,
	}
}

func sectionPayloads(sections []store.Section) []map[string]any {
	items := make([]map[string]any, 0, len(sections))
	for _, section := range sections {
		items = append(items, sectionPayload(section))
	}
	return items
}

func versionPayload(version store.Version) map[string]any {
	return map[string]any{
		"id":              version.ID,
		"documentId":      version.DocumentID,
		"label":           version.Label,
		"contentSnapshot": version.ContentSnapshot,
		"createdAt":       version.CreatedAt,
		"publishedAt":     version.PublishedAt,
		"hash":            version.Hash,
	}
}

func versionPayloads(versions []store.Version) []map[string]any {
	items := make([]map[string]any, 0, len(versions))
	for _, version := range versions {
		items = append(items, versionPayload(version))
	}
	return items
}

func acceptancePayload(acceptance store.Acceptance) map[string]any {
	return map[string]any{
		"id":                  acceptance.ID,
		"userId":              acceptance.UserID,
		"versionId":           acceptance.VersionID,
		"versionHashSnapshot": acceptance.VersionHashSnapshot,
		"acceptedAt":          acceptance.AcceptedAt,
	}
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func setCORSHeaders(header http.Header, origin string) {
	header.Set("Access-Control-Allow-Origin", origin)
	header.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, X-User-ID")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func randomRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) || errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	if errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound, "NOT_FOUND", "Not found", nil
	}
	if errors.Is(err, store.ErrVersionConflict) {
		return http.StatusConflict, "PUBLISH_CONFLICT", "A concurrent publish changed the latest version", nil
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
