package api

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dropline/pkg/buildinfo"
	"github.com/matzehuels/dropline/pkg/chart"
	"github.com/matzehuels/dropline/pkg/errors"
	"github.com/matzehuels/dropline/pkg/pipeline"
	"github.com/matzehuels/dropline/pkg/storage"
)

// LayoutRequest is the body of POST /v1/layout and POST /v1/charts.
type LayoutRequest struct {
	Name    string           `json:"name,omitempty"`
	Chart   chart.Chart      `json:"chart"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is the reply to POST /v1/layout.
type LayoutResponse struct {
	ChartHash string       `json:"chart_hash"`
	Layout    chart.Layout `json:"layout"`
	Cached    bool         `json:"cached"`

	// Artifacts holds rendered outputs other than json. PNG data is base64.
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

// CreateChartResponse is the reply to POST /v1/charts.
type CreateChartResponse struct {
	ID     string       `json:"id"`
	Layout chart.Layout `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, s.Logger, err)
		return
	}

	res, err := s.run(r, &req)
	if err != nil {
		writeError(w, r, s.Logger, err)
		return
	}

	resp := LayoutResponse{
		ChartHash: res.ChartHash,
		Layout:    res.Layout,
		Cached:    res.CacheInfo.LayoutHit,
	}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		if format == pipeline.FormatPNG {
			resp.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
		} else {
			resp.Artifacts[format] = string(data)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, r, s.Logger, errors.New(errors.ErrCodeUnsupported, "chart storage is not configured"))
		return
	}

	var req LayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, s.Logger, err)
		return
	}
	if err := errors.ValidateChartName(req.Name); err != nil {
		writeError(w, r, s.Logger, err)
		return
	}

	// Only the layout is stored; rendered artifacts are recomputed on demand.
	req.Options.Formats = []string{pipeline.FormatJSON}
	res, err := s.run(r, &req)
	if err != nil {
		writeError(w, r, s.Logger, err)
		return
	}

	id, err := s.Store.Save(r.Context(), &storage.Record{
		Name:   req.Name,
		Chart:  req.Chart,
		Layout: res.Layout,
	})
	if err != nil {
		writeError(w, r, s.Logger, err)
		return
	}
	s.Logger.Info("stored chart", "id", id, "individuals", len(req.Chart.Individuals))
	writeJSON(w, http.StatusCreated, CreateChartResponse{ID: id, Layout: res.Layout})
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, r, s.Logger, errors.New(errors.ErrCodeUnsupported, "chart storage is not configured"))
		return
	}
	list, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, r, s.Logger, err)
		return
	}
	if list == nil {
		list = []storage.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"charts": list})
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, r, s.Logger, errors.New(errors.ErrCodeUnsupported, "chart storage is not configured"))
		return
	}
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, r, s.Logger, errors.New(errors.ErrCodeUnsupported, "chart storage is not configured"))
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// run fills unset layout parameters from the server defaults and executes
// the pipeline.
func (s *Server) run(r *http.Request, req *LayoutRequest) (*pipeline.Result, error) {
	if len(req.Chart.Individuals) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "chart has no individuals")
	}

	opts := req.Options
	if opts.PersonWidth == 0 {
		opts.PersonWidth = s.Layout.PersonWidth
	}
	if opts.GenerationHeight == 0 {
		opts.GenerationHeight = s.Layout.GenerationHeight
	}
	if opts.HouseGap == 0 {
		opts.HouseGap = s.Layout.HouseGap
	}
	if opts.ComponentStep == 0 {
		opts.ComponentStep = s.Layout.ComponentStep
	}
	if opts.LevelCeiling == 0 {
		opts.LevelCeiling = s.Layout.LevelCeiling
	}
	opts.Logger = s.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid options: %v", err)
	}

	return s.Runner.Execute(r.Context(), req.Chart, opts)
}
