package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/metrics"
	"github.com/turkmvc/satmad/internal/propagation"
	"github.com/turkmvc/satmad/internal/satrec"
	"github.com/turkmvc/satmad/internal/tle"
	"github.com/turkmvc/satmad/internal/tracing"
)

// writeJSON encodes v before committing status, so a value that cannot be
// encoded becomes a 500 rather than an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		json.NewEncoder(&buf).Encode(ErrorResponse{Error: "response encoding failed"})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeBuildError maps a construction error to a response: out-of-range
// values are the caller's fault (400), text that does not decode is
// unprocessable (422).
func writeBuildError(w http.ResponseWriter, err error) {
	var ve *tle.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: ve.Field, Value: ve.Value, Range: ve.Range})
	case errors.Is(err, satrec.ErrMalformed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads a JSON body into v, rejecting unknown fields and bodies
// over maxBytes.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", mbe.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// profile resolves a requested gravity profile name, falling back to def.
func profile(w http.ResponseWriter, name string, def gravity.Profile) (gravity.Profile, bool) {
	if name == "" {
		return def, true
	}
	p, err := gravity.Lookup(name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "gravity", Value: name, Range: "wgs72, wgs72old, wgs84"})
		return gravity.Profile{}, false
	}
	return p, true
}

func (s *Server) parseText(w http.ResponseWriter, r *http.Request) (*tle.TLE, bool) {
	var req TextRequest
	if !decodeBody(w, r, s.cfg.MaxBodyBytes, &req) {
		return nil, false
	}
	p, ok := profile(w, req.Gravity, s.cfg.Profile)
	if !ok {
		return nil, false
	}

	opts := []tle.Option{tle.WithProfile(p)}
	if req.Name != "" {
		opts = append(opts, tle.WithName(req.Name))
	}

	_, span := tracing.StartSpan(r.Context(), "tle/parse")
	defer span.End()

	t, err := tle.Parse(req.Text, opts...)
	metrics.ObserveBuild(metrics.SourceLines, err)
	if err != nil {
		span.RecordError(err)
		s.logger.Debug("element set rejected", "component", "api", "source", metrics.SourceLines, "error", err)
		writeBuildError(w, err)
		return nil, false
	}
	span.SetAttributes(attribute.Int("sat_number", t.SatNumber()))

	// Decoded text is not range checked; a set with no mean motion has no
	// orbit to derive from or propagate.
	if n := t.MeanMotion(); !(n > 0) || math.IsInf(n, 0) {
		s.logger.Debug("element set rejected", "component", "api", "source", metrics.SourceLines, "error", "mean motion not positive")
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: "decoded mean motion must be positive",
			Field: tle.FieldMeanMotion,
			Value: t.MeanMotionRevPerDay(),
			Range: "(0, ∞) rev/day",
		})
		return nil, false
	}
	logBuild(s.logger, metrics.SourceLines, t)
	return t, true
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	t, ok := s.parseText(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newTLEResponse(t))
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	var req ElementsRequest
	if !decodeBody(w, r, s.cfg.MaxBodyBytes, &req) {
		return
	}
	if req.Epoch.IsZero() {
		writeError(w, http.StatusBadRequest, "epoch is required")
		return
	}
	p, ok := profile(w, req.Gravity, s.cfg.Profile)
	if !ok {
		return
	}

	_, span := tracing.StartSpan(r.Context(), "tle/elements")
	defer span.End()

	opts := append(req.options(p), tle.WithNDotDot(req.NDotDot))
	t, err := tle.New(req.elements(), opts...)
	metrics.ObserveBuild(metrics.SourceElements, err)
	if err != nil {
		span.RecordError(err)
		writeBuildError(w, err)
		return
	}
	logBuild(s.logger, metrics.SourceElements, t)
	writeJSON(w, http.StatusOK, newTLEResponse(t))
}

func (s *Server) handleGeo(w http.ResponseWriter, r *http.Request) {
	var req GeoRequest
	if !decodeBody(w, r, s.cfg.MaxBodyBytes, &req) {
		return
	}
	if req.Epoch.IsZero() {
		writeError(w, http.StatusBadRequest, "epoch is required")
		return
	}
	p, ok := profile(w, req.Gravity, s.cfg.Profile)
	if !ok {
		return
	}

	_, span := tracing.StartSpan(r.Context(), "tle/geo", attribute.Float64("longitude_deg", req.LongitudeDeg))
	defer span.End()

	t, err := tle.NewGeo(req.Epoch, angle.Deg(req.LongitudeDeg), req.options(p)...)
	metrics.ObserveBuild(metrics.SourceGeo, err)
	if err != nil {
		span.RecordError(err)
		writeBuildError(w, err)
		return
	}
	logBuild(s.logger, metrics.SourceGeo, t)
	writeJSON(w, http.StatusOK, newTLEResponse(t))
}

// handlePropagate propagates the posted element set to the "at" query
// parameter (RFC 3339), or to its epoch when absent.
func (s *Server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	var at time.Time
	if v := r.URL.Query().Get("at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid at parameter", Field: "at", Value: v, Range: "RFC 3339 time"})
			return
		}
		at = parsed
	}

	t, ok := s.parseText(w, r)
	if !ok {
		return
	}
	if at.IsZero() {
		at = t.Epoch()
	}

	_, span := tracing.StartSpan(r.Context(), "tle/propagate", attribute.Int("sat_number", t.SatNumber()))
	defer span.End()

	prop, err := propagation.NewSGP4Propagator(t)
	if err == nil {
		var st propagation.State
		st, err = prop.PropagateState(at)
		if err == nil {
			writeJSON(w, http.StatusOK, newStateResponse(t.SatNumber(), st))
			return
		}
	}

	span.RecordError(err)
	s.logger.Warn("propagation failed", "component", "api", "sat_number", t.SatNumber(), "at", at.Format(time.RFC3339), "error", err)
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "satmad",
		"gravity": s.cfg.Profile.Name,
		"routes": []string{
			"POST /api/v1/tle/decode",
			"POST /api/v1/tle/elements",
			"POST /api/v1/tle/geo",
			"POST /api/v1/tle/propagate",
			"GET /api/v1/gravity",
			"GET /api/v1/gravity/{name}",
		},
	})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	all := []gravity.Profile{gravity.WGS72, gravity.WGS72Old, gravity.WGS84}
	resp := make([]ProfileResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, newProfileResponse(p, s.cfg.Profile))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, err := gravity.Lookup(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p, s.cfg.Profile))
}

func logBuild(logger *slog.Logger, source string, t *tle.TLE) {
	logger.Debug("element set built", "component", "api", "source", source, "sat_number", t.SatNumber(), "name", t.Name())
}
