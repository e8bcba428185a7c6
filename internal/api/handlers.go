package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/logger"
	"github.com/agloo/themer/internal/model"
	"github.com/agloo/themer/internal/service"
	"github.com/agloo/themer/internal/storage"
	"github.com/agloo/themer/internal/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var log = logger.New("api")

type Handler struct {
	cfg         config.Config
	hub         *ws.Hub
	schemeSvc   *service.SchemeService
	gradientSvc *service.GradientService
	upgrader    websocket.Upgrader
}

type apiError struct {
	Error string `json:"error"`
}

// mixParams are the optional overrides shared by /v1/mix and /v1/mix/image.
type mixParams struct {
	Scheme     string    `json:"scheme"`
	Base       []string  `json:"base"`
	Adjacency  int       `json:"adjacency"`
	Weights    []float64 `json:"weights"`
	BaseWeight *float64  `json:"base_weight"`
	Decay      *float64  `json:"decay"`
	Threshold  *float64  `json:"threshold"`
	Contrast   bool      `json:"contrast"`
	SaveAs     string    `json:"save_as"`
}

type mixResponse struct {
	model.MixRecord
	Saved *model.Scheme `json:"saved,omitempty"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("websocket requires GET"))
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		writeErr(w, http.StatusBadRequest, errors.New("websocket upgrade required"))
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("ws upgrade failed: remote=%s uri=%s err=%v", r.RemoteAddr, r.RequestURI, err)
		return
	}
	var topics []string
	if v := r.URL.Query().Get("events"); v != "" {
		topics = strings.Split(v, ",")
	}
	client := ws.NewClient(h.hub, conn, topics...)
	h.hub.Register(client)
	h.hub.BroadcastEvent(model.Event{Type: "ws.client_connected", Payload: map[string]string{"id": uuid.NewString()}, CreatedAt: time.Now().UnixMilli()})
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) MixScheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Colors []string `json:"colors"`
		mixParams
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	inputs, err := service.ParseHexList(req.Colors)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	base, opts, err := h.resolveMix(req.mixParams)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	rec, err := h.schemeSvc.Mix(service.MixRequest{Inputs: inputs, Base: base, Options: opts, Contrast: req.Contrast})
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	h.finishMix(w, rec, req.mixParams)
}

func (h *Handler) MixImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	if err := validateImageUpload(fileHeader); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	b, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	params := mixParams{
		Scheme:    r.FormValue("scheme"),
		Adjacency: atoiDefault(r.FormValue("adjacency"), 0),
		Contrast:  r.FormValue("contrast") == "true",
		SaveAs:    r.FormValue("save_as"),
	}
	if v, ok := parseFloatField(r.FormValue("threshold")); ok {
		params.Threshold = &v
	}
	base, opts, err := h.resolveMix(params)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	rec, err := h.schemeSvc.MixImage(b, service.MixRequest{Base: base, Options: opts, Contrast: params.Contrast})
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	h.finishMix(w, rec, params)
}

func (h *Handler) resolveMix(p mixParams) (model.Palette, model.MixOptions, error) {
	var (
		base model.Palette
		err  error
	)
	if len(p.Base) > 0 {
		base, err = service.PaletteFromHex(p.Base)
	} else {
		base, err = h.schemeSvc.ResolveBase(p.Scheme)
	}
	if err != nil {
		return model.Palette{}, model.MixOptions{}, err
	}

	opts := h.schemeSvc.Options()
	if p.Threshold != nil {
		opts.Threshold = *p.Threshold
	}
	switch {
	case len(p.Weights) > 0:
		opts.Weights = p.Weights
		opts.Adjacency = len(p.Weights)
		if p.Adjacency > 0 {
			opts.Adjacency = p.Adjacency
		}
	case p.Adjacency > 0 || p.BaseWeight != nil || p.Decay != nil:
		baseWeight, decay := h.cfg.BaseWeight, h.cfg.Decay
		if p.BaseWeight != nil {
			baseWeight = *p.BaseWeight
		}
		if p.Decay != nil {
			decay = *p.Decay
		}
		if p.Adjacency > 0 {
			opts.Adjacency = p.Adjacency
		}
		opts.Weights = service.LinearWeights(opts.Adjacency, baseWeight, decay)
	}
	return base, opts, service.ValidateMixOptions(opts)
}

func (h *Handler) finishMix(w http.ResponseWriter, rec model.MixRecord, p mixParams) {
	resp := mixResponse{MixRecord: rec}
	if strings.TrimSpace(p.SaveAs) != "" {
		result, err := service.PaletteFromHex(rec.Result)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		sc, err := h.schemeSvc.SaveScheme(p.SaveAs, result, model.SourceMix)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		resp.Saved = &sc
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Gradient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req model.GradientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	colors, err := h.gradientSvc.Generate(req)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"colors": colors})
}

func (h *Handler) Schemes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.schemeSvc.Schemes())
	case http.MethodPost:
		var req struct {
			Name   string   `json:"name"`
			Colors []string `json:"colors"`
			Xrdb   string   `json:"xrdb"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		var (
			p      model.Palette
			source = model.SourceAPI
			err    error
		)
		if strings.TrimSpace(req.Xrdb) != "" {
			p, err = service.ParseXrdb(strings.NewReader(req.Xrdb))
			source = model.SourceXrdb
		} else {
			p, err = service.PaletteFromHex(req.Colors)
		}
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		sc, err := h.schemeSvc.SaveScheme(req.Name, p, source)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, sc)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) SchemeByID(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimPrefix(r.URL.Path, "/v1/schemes/")
	if ref == "" {
		writeErr(w, http.StatusBadRequest, errors.New("scheme id required"))
		return
	}
	var (
		sc  model.Scheme
		err error
	)
	switch r.Method {
	case http.MethodGet:
		sc, err = h.schemeSvc.Scheme(ref)
	case http.MethodDelete:
		sc, err = h.schemeSvc.DeleteScheme(ref)
	default:
		methodNotAllowed(w)
		return
	}
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, h.schemeSvc.History())
}

func validateImageUpload(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
		return nil
	default:
		return errors.New("unsupported image format")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrSchemeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMalformedColor),
		errors.Is(err, service.ErrInsufficientCandidates),
		errors.Is(err, service.ErrWeightCountMismatch),
		errors.Is(err, service.ErrIncompletePalette),
		errors.Is(err, service.ErrInvalidOptions),
		errors.Is(err, service.ErrUndecodableImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, apiError{Error: err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func atoiDefault(v string, d int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return d
	}
	return n
}

func parseFloatField(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
