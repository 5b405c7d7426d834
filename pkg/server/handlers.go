package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/jsonscope/pkg/buildinfo"
	apperr "github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/httputil"
	"github.com/matzehuels/jsonscope/pkg/pipeline"
	"github.com/matzehuels/jsonscope/pkg/store"
	"github.com/matzehuels/jsonscope/pkg/tree"
)

// CacheHeader reports whether a diagram or image came from the cache.
const CacheHeader = "X-Cache"

// TransformResponse is the body of POST /transform.
type TransformResponse struct {
	Root  *tree.Node `json:"root"`
	Nodes int        `json:"nodes"`
	Depth int        `json:"depth"`
}

// DiffRequest is the body of POST /diff. Both sides are JSON text so that
// a malformed side can be reported by name.
type DiffRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// PathRequest is the body of POST /path.
type PathRequest struct {
	Path []string `json:"path"`
}

// PathResponse is the body returned by POST /path.
type PathResponse struct {
	Notation string `json:"notation"`
}

// SaveDocumentRequest is the body of POST /documents.
type SaveDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
}

func (s *Server) reply(w http.ResponseWriter, status int, v any) {
	if err := httputil.WriteJSON(w, status, v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) body(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := httputil.ReadBody(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return data, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.reply(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	data, ok := s.body(w, r)
	if !ok {
		return
	}
	ins, err := s.runner.Inspect(r.Context(), data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.reply(w, http.StatusOK, TransformResponse{Root: ins.Root, Nodes: ins.Stats.Nodes, Depth: ins.Stats.Depth})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	data, ok := s.body(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	src, hit, err := s.runner.DiagramWithCacheInfo(r.Context(), data, pipeline.DiagramOptions{
		Format: q.Get("format"),
		Theme:  q.Get("theme"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(CacheHeader, cacheStatus(hit))
	_, _ = w.Write([]byte(src))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, ok := s.body(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	opts := pipeline.RenderOptions{Format: q.Get("format"), Theme: q.Get("theme")}
	img, hit, err := s.runner.RenderWithCacheInfo(r.Context(), data, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ct := "image/svg+xml"
	if opts.Format == pipeline.FormatPNG {
		ct = "image/png"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set(CacheHeader, cacheStatus(hit))
	_, _ = w.Write(img)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := httputil.DecodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

	res, err := s.runner.Compare(r.Context(), []byte(req.Left), []byte(req.Right))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.reply(w, http.StatusOK, res.Filtered(!all))
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if err := httputil.DecodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.reply(w, http.StatusOK, PathResponse{Notation: tree.DotNotation(req.Path)})
}

func (s *Server) documents(w http.ResponseWriter, r *http.Request) (store.Store, bool) {
	if s.store == nil {
		s.fail(w, r, apperr.New(apperr.ErrCodeUnsupported, "document storage is not configured"))
		return nil, false
	}
	return s.store, true
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, ok := s.documents(w, r)
	if !ok {
		return
	}
	list, err := docs.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	s.reply(w, http.StatusOK, list)
}

func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	docs, ok := s.documents(w, r)
	if !ok {
		return
	}
	var req SaveDocumentRequest
	if err := httputil.DecodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.runner.Parse(r.Context(), []byte(req.Content)); err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := store.NewDocument(req.Name, req.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := docs.Save(r.Context(), doc); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/documents/"+doc.ID)
	s.reply(w, http.StatusCreated, doc)
}

func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (*store.Document, bool) {
	docs, ok := s.documents(w, r)
	if !ok {
		return nil, false
	}
	id := chi.URLParam(r, "id")
	if err := apperr.ValidateDocumentID(id); err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	doc, err := docs.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if doc, ok := s.loadDocument(w, r); ok {
		s.reply(w, http.StatusOK, doc)
	}
}

func (s *Server) handleDocumentTree(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	ins, err := s.runner.Inspect(r.Context(), []byte(doc.Content))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.reply(w, http.StatusOK, TransformResponse{Root: ins.Root, Nodes: ins.Stats.Nodes, Depth: ins.Stats.Depth})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docs, ok := s.documents(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := apperr.ValidateDocumentID(id); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := docs.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
