package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"dav/internal/application/tableobject/usecases"
	"dav/internal/domain/session"
	"dav/internal/domain/tableobject"
	"dav/internal/interfaces/http/middleware"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
	"dav/internal/shared/utils"
)

type createObjectExecutor interface {
	Execute(ctx context.Context, sess *session.Session, cmd usecases.CreateTableObjectCommand) (*tableobject.TableObject, error)
}

type getObjectExecutor interface {
	Execute(ctx context.Context, sess *session.Session, uuid string) (*usecases.AccessResolution, error)
}

type updateObjectExecutor interface {
	Execute(ctx context.Context, sess *session.Session, cmd usecases.UpdateTableObjectCommand) (*usecases.AccessResolution, error)
}

type deleteObjectExecutor interface {
	Execute(ctx context.Context, sess *session.Session, uuid string) error
}

type grantAccessExecutor interface {
	Execute(ctx context.Context, sess *session.Session, cmd usecases.GrantAccessCommand) (*tableobject.UserAccess, error)
}

type revokeAccessExecutor interface {
	Execute(ctx context.Context, sess *session.Session, uuid string) error
}

type completeFileExecutor interface {
	Execute(ctx context.Context, sess *session.Session, cmd usecases.CompleteFileUploadCommand) (*tableobject.TableObject, error)
}

type TableObjectHandler struct {
	createObject createObjectExecutor
	getObject    getObjectExecutor
	updateObject updateObjectExecutor
	deleteObject deleteObjectExecutor
	grantAccess  grantAccessExecutor
	revokeAccess revokeAccessExecutor
	completeFile completeFileExecutor
	logger       logger.Interface
}

func NewTableObjectHandler(
	createObject createObjectExecutor,
	getObject getObjectExecutor,
	updateObject updateObjectExecutor,
	deleteObject deleteObjectExecutor,
	grantAccess grantAccessExecutor,
	revokeAccess revokeAccessExecutor,
	completeFile completeFileExecutor,
	logger logger.Interface,
) *TableObjectHandler {
	return &TableObjectHandler{
		createObject: createObject,
		getObject:    getObject,
		updateObject: updateObject,
		deleteObject: deleteObject,
		grantAccess:  grantAccess,
		revokeAccess: revokeAccess,
		completeFile: completeFile,
		logger:       logger,
	}
}

type createTableObjectRequest struct {
	UUID       string         `json:"uuid"`
	TableID    uint           `json:"table_id"`
	File       bool           `json:"file"`
	Properties map[string]any `json:"properties"`
}

type updateTableObjectRequest struct {
	Properties map[string]any `json:"properties"`
}

type completeFileUploadRequest struct {
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Etag        string `json:"etag"`
}

type grantAccessRequest struct {
	TableAlias *uint `json:"table_alias"`
}

// TableObjectResponse carries the object with its raw text property bag. The
// table id is the effective one: a grant alias when the caller holds one.
type TableObjectResponse struct {
	UUID       string            `json:"uuid"`
	TableID    uint              `json:"table_id"`
	File       bool              `json:"file"`
	Etag       string            `json:"etag"`
	Properties map[string]string `json:"properties"`
}

func tableObjectResponse(obj *tableobject.TableObject, effectiveTableID uint) TableObjectResponse {
	props := make(map[string]string, len(obj.Properties))
	for _, p := range obj.Properties {
		props[p.Name] = p.Value
	}
	return TableObjectResponse{
		UUID:       obj.UUID,
		TableID:    effectiveTableID,
		File:       obj.File,
		Etag:       obj.Etag,
		Properties: props,
	}
}

// decodeJSONBody decodes with UseNumber so integers survive the trip through
// the generic property map instead of collapsing to float64.
func decodeJSONBody(c *gin.Context, dst any) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	return decoder.Decode(dst)
}

func taggedProperties(raw map[string]any) map[string]tableobject.Value {
	props := make(map[string]tableobject.Value, len(raw))
	for name, v := range raw {
		props[name] = tableobject.ValueFromJSON(v)
	}
	return props
}

func (h *TableObjectHandler) Create(c *gin.Context) {
	var req createTableObjectRequest
	if err := decodeJSONBody(c, &req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	sess := middleware.SessionFromContext(c)
	obj, err := h.createObject.Execute(c.Request.Context(), sess, usecases.CreateTableObjectCommand{
		UUID:       req.UUID,
		TableID:    req.TableID,
		File:       req.File,
		Properties: taggedProperties(req.Properties),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, tableObjectResponse(obj, obj.TableID))
}

func (h *TableObjectHandler) Get(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	resolution, err := h.getObject.Execute(c.Request.Context(), sess, c.Param("uuid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tableObjectResponse(resolution.Object, resolution.EffectiveTableID))
}

func (h *TableObjectHandler) Update(c *gin.Context) {
	var req updateTableObjectRequest
	if err := decodeJSONBody(c, &req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	sess := middleware.SessionFromContext(c)
	resolution, err := h.updateObject.Execute(c.Request.Context(), sess, usecases.UpdateTableObjectCommand{
		UUID:       c.Param("uuid"),
		Properties: taggedProperties(req.Properties),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tableObjectResponse(resolution.Object, resolution.EffectiveTableID))
}

func (h *TableObjectHandler) Delete(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	if err := h.deleteObject.Execute(c.Request.Context(), sess, c.Param("uuid")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TableObjectHandler) GrantAccess(c *gin.Context) {
	var req grantAccessRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
			return
		}
	}

	sess := middleware.SessionFromContext(c)
	access, err := h.grantAccess.Execute(c.Request.Context(), sess, usecases.GrantAccessCommand{
		UUID:       c.Param("uuid"),
		TableAlias: req.TableAlias,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"table_object_id": access.TableObjectID,
		"table_alias":     access.TableAlias,
	})
}

func (h *TableObjectHandler) RevokeAccess(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	if err := h.revokeAccess.Execute(c.Request.Context(), sess, c.Param("uuid")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TableObjectHandler) CompleteFileUpload(c *gin.Context) {
	var req completeFileUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	sess := middleware.SessionFromContext(c)
	obj, err := h.completeFile.Execute(c.Request.Context(), sess, usecases.CompleteFileUploadCommand{
		UUID:        c.Param("uuid"),
		Size:        req.Size,
		ContentType: req.ContentType,
		FileEtag:    req.Etag,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tableObjectResponse(obj, obj.TableID))
}
