package http

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/gin-gonic/gin"

	"intent-routing-engine/internal/policy"
	"intent-routing-engine/pkg/response"
)

// documentPath detects the {"path": "..."} body variant. A real policy
// document never carries a top-level path key.
func documentPath(data []byte) (string, bool) {
	var ref struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(data, &ref); err != nil || ref.Path == "" {
		return "", false
	}
	return ref.Path, true
}

// HandleReload handles policy reload requests
// @Summary Reload the routing policy
// @Description Validate and atomically publish a policy document: either the raw document (YAML or JSON) or {"path": "..."} pointing at a file on the server
// @Tags Policy
// @Accept plain
// @Produce json
// @Success 200 {object} response.Resp "Published version"
// @Failure 400 {object} response.Resp "Unreadable document"
// @Failure 422 {object} response.Resp "Violated invariants; previous policy keeps serving"
// @Router /api/v1/policy/reload [post]
func (h *handler) HandleReload(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var version string
	if path, ok := documentPath(data); ok {
		version, err = h.store.LoadFile(c.Request.Context(), path)
	} else {
		version, err = h.store.Reload(c.Request.Context(), data)
	}
	if err != nil {
		var verrs policy.ValidationErrors
		if errors.As(err, &verrs) {
			response.UnprocessableEntity(c, err, gin.H{
				"invariants":     verrs.Invariants(),
				"active_version": h.store.Version(),
			})
			return
		}
		response.Error(c, err, nil)
		return
	}

	response.OK(c, gin.H{"version": version})
}

// HandleValidate handles policy dry-run validation
// @Summary Validate a policy document
// @Description Dry run: check every invariant without publishing
// @Tags Policy
// @Accept plain
// @Produce json
// @Success 200 {object} response.Resp "Document is valid"
// @Failure 400 {object} response.Resp "Unreadable document"
// @Failure 422 {object} response.Resp "Violated invariants"
// @Router /api/v1/policy/validate [post]
func (h *handler) HandleValidate(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if path, ok := documentPath(data); ok {
		data, err = os.ReadFile(path)
		if err != nil {
			response.Error(c, err, nil)
			return
		}
	}

	doc, err := policy.Parse(data)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if verrs := policy.Validate(doc); len(verrs) > 0 {
		details := make([]gin.H, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, gin.H{"invariant": v.Invariant, "detail": v.Detail})
		}
		response.UnprocessableEntity(c, verrs, gin.H{
			"invariants": verrs.Invariants(),
			"violations": details,
		})
		return
	}

	response.OK(c, gin.H{"version": doc.Version, "valid": true})
}
