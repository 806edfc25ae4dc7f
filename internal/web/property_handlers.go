package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/property"
)

// createPropertyRequest requires every field to be present in the body.
type createPropertyRequest struct {
	Name         *string  `json:"name" binding:"required"`
	Address      *string  `json:"address" binding:"required"`
	Price        *float64 `json:"price" binding:"required"`
	CodeInternal *string  `json:"code_internal" binding:"required"`
	Year         *int     `json:"year" binding:"required"`
	IDOwner      *string  `json:"id_owner" binding:"required"`
}

func (r createPropertyRequest) toCreate() property.Create {
	return property.Create{
		Name:         *r.Name,
		Address:      *r.Address,
		Price:        *r.Price,
		CodeInternal: *r.CodeInternal,
		Year:         *r.Year,
		IDOwner:      *r.IDOwner,
	}
}

func (s *Server) handleCreateProperty(c *gin.Context) {
	const op = "property.create"

	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, op, bindError(err))
		return
	}

	p, err := s.props.Create(c.Request.Context(), req.toCreate())
	if err != nil {
		writeError(c, op, err)
		return
	}

	apiJSON(c, p, http.StatusOK)
}

func (s *Server) handleGetProperty(c *gin.Context) {
	const op = "property.get"

	p, err := s.props.Get(c.Request.Context(), c.Param("property_id"))
	if err != nil {
		writeError(c, op, err)
		return
	}

	apiJSON(c, p, http.StatusOK)
}

func (s *Server) handleChangePrice(c *gin.Context) {
	const op = "property.change_price"

	raw, ok := c.GetQuery("price_in")
	if !ok || strings.TrimSpace(raw) == "" {
		writeError(c, op, apperr.Invalid("price_in", "field required"))
		return
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		writeError(c, op, apperr.Invalid("price_in", "must be a number"))
		return
	}

	p, err := s.props.UpdatePrice(c.Request.Context(), c.Param("property_id"), price)
	if err != nil {
		writeError(c, op, renameField(err, "price", "price_in"))
		return
	}

	apiJSON(c, p, http.StatusOK)
}

func (s *Server) handleUploadImage(c *gin.Context) {
	const op = "property.upload_image"

	if s.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes+multipartOverhead)
	}

	hdr, err := c.FormFile("image")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(c, op, apperr.ErrFileTooLarge)
			return
		}
		writeError(c, op, apperr.Invalid("image", "file required"))
		return
	}

	f, err := hdr.Open()
	if err != nil {
		writeError(c, op, err)
		return
	}
	defer func() { _ = f.Close() }()

	img, err := s.props.UploadImage(c.Request.Context(), c.Param("property_id"), hdr.Filename, f)
	if err != nil {
		writeError(c, op, err)
		return
	}

	apiJSON(c, img, http.StatusOK)
}
