package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/repository"
	"github.com/usermenei/E-ses/internal/service"
)

type SpaceHandler struct {
	svc *service.SpaceSvc
}

func NewSpaceHandler(svc *service.SpaceSvc) *SpaceHandler {
	return &SpaceHandler{svc: svc}
}

type spaceRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	District   string `json:"district"`
	Province   string `json:"province"`
	Postalcode string `json:"postalcode"`
	Tel        string `json:"tel"`
	Region     string `json:"region"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
}

func (in *spaceRequest) toDomain(id string) *domain.CoworkingSpace {
	return &domain.CoworkingSpace{
		ID:         id,
		Name:       in.Name,
		Address:    in.Address,
		District:   in.District,
		Province:   in.Province,
		Postalcode: in.Postalcode,
		Tel:        in.Tel,
		Region:     in.Region,
		OpenTime:   in.OpenTime,
		CloseTime:  in.CloseTime,
	}
}

// parseSpaceQuery turns the query string into the enumerated filter form.
// Reserved keys (select, sort, page, limit) shape the result set; every
// other key is either a plain equality filter or "field[op]" with op one of
// gt/gte/lt/lte/in.
func parseSpaceQuery(c *gin.Context) repository.SpaceQuery {
	q := repository.SpaceQuery{Page: 1, Limit: 25}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch key {
		case "select":
			q.Select = strings.Split(v, ",")
		case "sort":
			q.Sort = strings.Split(v, ",")
		case "page":
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				q.Page = n
			}
		case "limit":
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				q.Limit = n
			}
		default:
			field, op := key, repository.OpEq
			if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
				field = key[:i]
				op = repository.FilterOp(key[i+1 : len(key)-1])
			}
			values := []string{v}
			if op == repository.OpIn {
				values = strings.Split(v, ",")
			}
			q.Filters = append(q.Filters, repository.SpaceFilter{Field: field, Op: op, Values: values})
		}
	}
	return q
}

// GET /coworkingspaces
func (h *SpaceHandler) List(c *gin.Context) {
	q := parseSpaceQuery(c)
	spaces, total, err := h.svc.List(c, q)
	if err != nil {
		failErr(c, err)
		return
	}

	pg := pagination{}
	if int64(q.Page*q.Limit) < total {
		pg.Next = &pageInfo{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Page > 1 {
		pg.Prev = &pageInfo{Page: q.Page - 1, Limit: q.Limit}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(spaces),
		"pagination": pg,
		"data":       spaces,
	})
}

// GET /coworkingspaces/:id
func (h *SpaceHandler) Get(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	sp, err := h.svc.Get(c, id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sp)
}

// POST /coworkingspaces (admin)
func (h *SpaceHandler) Create(c *gin.Context) {
	var in spaceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	sp := in.toDomain("")
	if err := h.svc.Create(c, sp); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, sp)
}

// PUT /coworkingspaces/:id (admin)
func (h *SpaceHandler) Update(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	var in spaceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	sp := in.toDomain(id)
	if err := h.svc.Update(c, sp); err != nil {
		failErr(c, err)
		return
	}
	updated, err := h.svc.Get(c, id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}

// DELETE /coworkingspaces/:id (admin)
func (h *SpaceHandler) Delete(c *gin.Context) {
	id, valid := requireID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.Delete(c, id); err != nil {
		failErr(c, err)
		return
	}
	okMsg(c, http.StatusOK, "Coworking space deleted successfully", nil)
}
