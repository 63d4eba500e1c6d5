package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/blogkit/internal/blog"
	"github.com/dmitrymomot/blogkit/pkg/autop"
	"github.com/dmitrymomot/blogkit/pkg/kses"
	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/sanitizer"
	"github.com/dmitrymomot/blogkit/pkg/slug"
	"github.com/dmitrymomot/blogkit/pkg/store"
	"github.com/dmitrymomot/blogkit/pkg/translit"
)

type autopRequest struct {
	Text string `json:"text"`
	// Breaks defaults to true.
	Breaks  *bool `json:"br,omitempty"`
	Reverse bool  `json:"reverse,omitempty"`
}

type htmlResponse struct {
	HTML string `json:"html"`
}

func (h *handlers) autop(w http.ResponseWriter, r *http.Request) {
	var req autopRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if req.Reverse {
		writeJSON(w, http.StatusOK, htmlResponse{HTML: autop.Reverse(req.Text)})
		return
	}
	breaks := req.Breaks == nil || *req.Breaks
	writeJSON(w, http.StatusOK, htmlResponse{HTML: autop.Autop(req.Text, autop.WithBreaks(breaks))})
}

type filterRequest struct {
	HTML        string `json:"html"`
	AllowedTags string `json:"allowed_tags,omitempty"`
	// Safe keeps block formatting (p, br, code, pre, blockquote) and
	// ignores AllowedTags.
	Safe bool `json:"safe,omitempty"`
}

func (h *handlers) filter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Safe {
		writeJSON(w, http.StatusOK, htmlResponse{HTML: sanitizer.SanitizeHTML(req.HTML)})
		return
	}
	writeJSON(w, http.StatusOK, htmlResponse{HTML: sanitizer.FilterHTML(req.HTML, req.AllowedTags)})
}

type escURLRequest struct {
	URL       string   `json:"url"`
	Protocols []string `json:"protocols,omitempty"`
	// "display" (default) or "db".
	Context string `json:"context,omitempty"`
}

type escURLResponse struct {
	URL string `json:"url"`
}

func (h *handlers) escURL(w http.ResponseWriter, r *http.Request) {
	var req escURLRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var opts []kses.Option
	if req.Protocols != nil {
		opts = append(opts, kses.WithProtocols(req.Protocols...))
	}
	switch req.Context {
	case "", "display":
	case "db":
		opts = append(opts, kses.WithContext(kses.DB))
	default:
		writeError(w, r, h.log, NewHTTPError(http.StatusBadRequest, `context must be "display" or "db"`, ErrBadRequest))
		return
	}

	writeJSON(w, http.StatusOK, escURLResponse{URL: kses.EscURL(req.URL, opts...)})
}

type accentsRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

type accentsResponse struct {
	Text      string `json:"text"`
	Locale    string `json:"locale,omitempty"`
	SeemsUTF8 bool   `json:"seems_utf8"`
}

func (h *handlers) accents(w http.ResponseWriter, r *http.Request) {
	var req accentsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	locale := h.locale(r, req.Locale)
	writeJSON(w, http.StatusOK, accentsResponse{
		Text:      translit.RemoveAccents(req.Text, locale),
		Locale:    locale,
		SeemsUTF8: translit.SeemsUTF8(req.Text),
	})
}

type slugRequest struct {
	Title  string `json:"title"`
	Locale string `json:"locale,omitempty"`
	// Unique checks stored articles and returns the first free slug.
	Unique bool `json:"unique,omitempty"`
}

type slugResponse struct {
	Slug string `json:"slug"`
}

func (h *handlers) slug(w http.ResponseWriter, r *http.Request) {
	var req slugRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	locale := h.locale(r, req.Locale)
	if !req.Unique {
		writeJSON(w, http.StatusOK, slugResponse{Slug: slug.Make(req.Title, slug.WithLocale(locale))})
		return
	}

	s, err := h.blog.SlugFor(r.Context(), req.Title, locale)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, slugResponse{Slug: s})
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request) {
	var doc render.Document
	if err := decode(r, &doc); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	f, err := render.ParseFormat(string(doc.Format))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	doc.Format = f

	res, err := h.renderer.Render(r.Context(), doc)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) createArticle(w http.ResponseWriter, r *http.Request) {
	var in blog.ArticleInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	in.Locale = h.locale(r, in.Locale)

	a, err := h.blog.CreateArticle(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *handlers) listArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var p store.ListParams
	if v := q.Get("status"); v != "" {
		st, err := store.ParseStatus(v)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		p.Status = st
	}
	if v := q.Get("category"); v != "" {
		c, err := h.blog.Category(r.Context(), v)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		p.CategoryID = c.ID
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, h.log, NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer", ErrBadRequest))
			return
		}
		p.Limit = n
	}

	articles, err := h.blog.Articles(r.Context(), p)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if articles == nil {
		articles = []store.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (h *handlers) getArticle(w http.ResponseWriter, r *http.Request) {
	a, err := h.blog.Article(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type categoryRequest struct {
	Name   string `json:"name"`
	Locale string `json:"locale,omitempty"`
}

func (h *handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	c, err := h.blog.CreateCategory(r.Context(), req.Name, h.locale(r, req.Locale))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handlers) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.blog.Category(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// locale prefers an explicit request value over the Accept-Language match.
func (h *handlers) locale(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return LocaleFromContext(r.Context())
}
