package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/hongminglow/packpoint-be/internal/http/respond"
	"github.com/hongminglow/packpoint-be/internal/logging"
	"github.com/hongminglow/packpoint-be/internal/media"
	"github.com/hongminglow/packpoint-be/internal/models"
	"github.com/hongminglow/packpoint-be/internal/models/dto"
	"github.com/hongminglow/packpoint-be/internal/requestctx"
)

const (
	imageField = "image"
	// room for the text fields of a multipart body on top of the image
	formOverhead = 1 << 20
)

// PointService is the point behavior the handler depends on.
type PointService interface {
	List(ctx context.Context) ([]models.Point, error)
	ListByOwner(ctx context.Context, uid string) ([]models.Point, error)
	Get(ctx context.Context, id int64) (models.Point, error)
	Nearby(ctx context.Context, origin models.Location) ([]models.Point, error)
	Create(ctx context.Context, fields models.PointFields, uid string, upload *media.Upload) (int64, error)
	Update(ctx context.Context, id int64, fields models.PointFields, upload *media.Upload) error
	Delete(ctx context.Context, id int64) error
}

// PointsHandler serves /api/points.
type PointsHandler struct {
	points   PointService
	maxImage int64
	log      logging.Logger
}

// NewPointsHandler creates the handler. maxImage bounds the request body of
// create and update.
func NewPointsHandler(points PointService, maxImage int64) *PointsHandler {
	return &PointsHandler{
		points:   points,
		maxImage: maxImage,
		log:      logging.GetLogger("http.points"),
	}
}

// Register attaches point routes. protect wraps routes that need a verified uid.
func (h *PointsHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/points", h.handleList)
	mux.Handle("GET /api/points/mine", protect(http.HandlerFunc(h.handleMine)))
	mux.HandleFunc("GET /api/points/nearby", h.handleNearby)
	mux.HandleFunc("GET /api/points/{pointId}", h.handleGet)
	mux.Handle("POST /api/points", protect(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/points/{pointId}", protect(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/points/{pointId}", protect(http.HandlerFunc(h.handleDelete)))
}

func (h *PointsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	points, err := h.points.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err, "failed to list points")
		return
	}
	if len(points) == 0 {
		respond.JSON(w, http.StatusOK, "no points found", []models.Point{})
		return
	}
	respond.JSON(w, http.StatusOK, "points retrieved", points)
}

func (h *PointsHandler) handleMine(w http.ResponseWriter, r *http.Request) {
	uid, _ := requestctx.UIDFromContext(r.Context())
	points, err := h.points.ListByOwner(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err, "failed to list points")
		return
	}
	respond.JSON(w, http.StatusOK, "points retrieved", points)
}

func (h *PointsHandler) handleNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	origin, err := dto.ParseLocation(query.Get("lat"), query.Get("lng"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid location")
		return
	}
	points, err := h.points.Nearby(r.Context(), origin)
	if err != nil {
		writeError(w, r, h.log, err, "failed to search nearby points")
		return
	}
	respond.JSON(w, http.StatusOK, "points retrieved", points)
}

func (h *PointsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID("pointId", r.PathValue("pointId"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid point id")
		return
	}
	point, err := h.points.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err, "failed to get point")
		return
	}
	respond.JSON(w, http.StatusOK, "point retrieved", point)
}

func (h *PointsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, upload, err := h.readPointForm(w, r)
	if err != nil {
		writeError(w, r, h.log, err, "invalid point")
		return
	}
	uid, _ := requestctx.UIDFromContext(r.Context())
	id, err := h.points.Create(r.Context(), fields, uid, upload)
	if err != nil {
		writeError(w, r, h.log, err, "failed to create point")
		return
	}
	respond.JSON(w, http.StatusCreated, "point created", dto.CreatedResponse{ID: id})
}

func (h *PointsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID("pointId", r.PathValue("pointId"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid point id")
		return
	}
	fields, upload, err := h.readPointForm(w, r)
	if err != nil {
		writeError(w, r, h.log, err, "invalid point")
		return
	}
	if err := h.points.Update(r.Context(), id, fields, upload); err != nil {
		writeError(w, r, h.log, err, "failed to update point")
		return
	}
	respond.JSON(w, http.StatusOK, "point updated", nil)
}

func (h *PointsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID("pointId", r.PathValue("pointId"))
	if err != nil {
		writeError(w, r, h.log, err, "invalid point id")
		return
	}
	if err := h.points.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err, "failed to delete point")
		return
	}
	respond.JSON(w, http.StatusOK, "point deleted", nil)
}

// readPointForm accepts JSON, urlencoded or multipart bodies. Only multipart
// bodies can carry the optional image part.
func (h *PointsHandler) readPointForm(w http.ResponseWriter, r *http.Request) (models.PointFields, *media.Upload, error) {
	if isJSON(r) {
		fields, err := readPointJSON(w, r)
		return fields, nil, err
	}

	if h.maxImage > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxImage+formOverhead)
	}
	if err := r.ParseMultipartForm(formOverhead); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return models.PointFields{}, nil, err
		}
		return models.PointFields{}, nil, dto.Invalid("body", "is not a valid form")
	}

	form := dto.PointForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Rating:      r.FormValue("rating"),
		NoiseLevel:  r.FormValue("noise_level"),
		BusyLevel:   r.FormValue("busy_level"),
		Wifi:        r.FormValue("wifi"),
		Amenities:   r.FormValue("amenities"),
		Lat:         r.FormValue("lat"),
		Lng:         r.FormValue("lng"),
	}
	fields, err := form.Parse()
	if err != nil {
		return models.PointFields{}, nil, err
	}

	upload, err := readUpload(r)
	if err != nil {
		return models.PointFields{}, nil, err
	}
	return fields, upload, nil
}

func readPointJSON(w http.ResponseWriter, r *http.Request) (models.PointFields, error) {
	var req dto.PointRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, formOverhead)).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return models.PointFields{}, err
		}
		return models.PointFields{}, dto.Invalid("body", "must be a JSON object of point fields")
	}
	return req.Form().Parse()
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func readUpload(r *http.Request) (*media.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &media.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
