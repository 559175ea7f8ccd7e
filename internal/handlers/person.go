package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
	"github.com/Yurchenkopi/job4j-auth/internal/service"

	"github.com/gin-gonic/gin"
)

// Validation messages kept stable for existing clients.
const (
	msgZeroID          = "user id must not be equal to zero"
	msgMissingCreds    = "username and password must not be empty"
	msgWeakPassword    = "password must contain at least one lowercase and at least one uppercase letter"
	msgNotFound        = "user is not found, please check id"
	msgBadBody         = "request body must be a JSON person object"
	msgInvalidCreds    = "invalid login or password"
	msgInternalFailure = "internal server error"
)

// Single, shared credentials payload for sign-in.
type signInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// writeError logs the failure and renders the {"message","type"} error body.
// Unclassified errors (store failures) are fatal to the request: 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var de *models.Error
	if !errors.As(err, &de) {
		de = models.Wrap(models.KindInternal, msgInternalFailure, err)
	}
	if h.log != nil {
		h.log.Errorw("request_failed",
			"type", string(de.Kind),
			"message", de.Message,
			"err", err,
			"request_id", c.GetString(requestIDKey),
		)
	}
	c.JSON(de.Kind.HTTPStatus(), gin.H{"message": de.Message, "type": string(de.Kind)})
}

// pathID parses the :id path parameter. Zero and non-numeric values are
// rejected before the store is ever consulted.
func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		return 0, models.E(models.KindInvalidIdentifier, msgZeroID)
	}
	return id, nil
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List persons
// @Tags         person
// @Produce      json
// @Success      200  {array}   models.Person
// @Failure      500  {object}  map[string]string
// @Router       /person/ [get]
func (h *Handler) listPersons(c *gin.Context) {
	persons, err := h.services.FindAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, persons)
}

// @Summary      Get person by id
// @Tags         person
// @Produce      json
// @Param        id   path      int  true  "Person id (non-zero)"
// @Success      200  {object}  models.Person
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /person/{id} [get]
func (h *Handler) getPersonByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	p, err := h.services.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if p == nil {
		h.writeError(c, models.E(models.KindNotFound, msgNotFound))
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Sign up (create person)
// @Tags         person
// @Accept       json
// @Produce      json
// @Param        body  body      models.Person  true  "login and raw password required"
// @Success      200   {object}  models.Person  "password field holds the stored hash"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /person/ [post]
func (h *Handler) createPerson(c *gin.Context) {
	var p models.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		h.writeError(c, models.Wrap(models.KindStructuralMismatch, msgBadBody, err))
		return
	}
	if p.Login == "" || p.Password == "" {
		h.writeError(c, models.E(models.KindMissingCredential, msgMissingCreds))
		return
	}
	if !h.services.Validate(p.Password) {
		h.writeError(c, models.E(models.KindWeakPassword, msgWeakPassword))
		return
	}
	stored, err := h.services.SignUp(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// @Summary      Sign in (verify credentials)
// @Description  Username/password principal lookup; no token is issued.
// @Tags         person
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "credentials"
// @Success      200   {object}  models.Person
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /person/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, models.Wrap(models.KindStructuralMismatch, msgBadBody, err))
		return
	}
	if req.Login == "" || req.Password == "" {
		h.writeError(c, models.E(models.KindMissingCredential, msgMissingCreds))
		return
	}
	principal, err := h.services.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("sign_in_rejected", "login", req.Login, "request_id", c.GetString(requestIDKey))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCreds, "type": "Unauthorized"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, principal)
}

// @Summary      Full update
// @Tags         person
// @Accept       json
// @Produce      json
// @Param        body  body      models.Person  true  "full person with non-zero id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /person/ [put]
func (h *Handler) updatePerson(c *gin.Context) {
	var p models.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		h.writeError(c, models.Wrap(models.KindStructuralMismatch, msgBadBody, err))
		return
	}
	if p.ID == 0 {
		h.writeError(c, models.E(models.KindInvalidIdentifier, msgZeroID))
		return
	}
	if p.Login == "" || p.Password == "" {
		h.writeError(c, models.E(models.KindMissingCredential, msgMissingCreds))
		return
	}
	if !h.services.Validate(p.Password) {
		h.writeError(c, models.E(models.KindWeakPassword, msgWeakPassword))
		return
	}
	hash, err := service.HashPassword(p.Password)
	if err != nil {
		h.writeError(c, models.Wrap(models.KindWeakPassword, msgWeakPassword, err))
		return
	}
	p.Password = hash
	updated, err := h.services.Update(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !updated {
		h.writeError(c, models.E(models.KindNotFound, msgNotFound))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Partial update (merge)
// @Description  Non-empty fields of the payload overwrite the stored record; absent or empty fields stay untouched. The id only locates the record.
// @Tags         person
// @Accept       json
// @Produce      json
// @Param        body  body      models.Person  true  "partial person, id required"
// @Success      200   {object}  models.Person
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /person/ [patch]
func (h *Handler) patchPerson(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.writeError(c, models.Wrap(models.KindStructuralMismatch, msgBadBody, err))
		return
	}

	// Reject payload keys the entity does not declare before merging.
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.writeError(c, models.Wrap(models.KindStructuralMismatch, msgBadBody, err))
		return
	}
	known := service.PersonFieldNames()
	for key := range payload {
		if _, ok := known[key]; !ok {
			h.writeError(c, models.E(models.KindStructuralMismatch,
				"unknown field "+strconv.Quote(key)+": cannot reconcile payload with person fields"))
			return
		}
	}

	var partial models.Person
	if err := json.Unmarshal(raw, &partial); err != nil {
		h.writeError(c, models.Wrap(models.KindStructuralMismatch, msgBadBody, err))
		return
	}
	if partial.ID == 0 {
		h.writeError(c, models.E(models.KindInvalidIdentifier, msgZeroID))
		return
	}

	ctx := c.Request.Context()
	current, err := h.services.FindByID(ctx, partial.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if current == nil {
		h.writeError(c, models.E(models.KindNotFound, msgNotFound))
		return
	}

	// A raw password arriving through a partial update is hashed before the
	// merge so the store never holds plaintext.
	if partial.Password != "" {
		hash, err := service.HashPassword(partial.Password)
		if err != nil {
			h.writeError(c, models.Wrap(models.KindWeakPassword, msgWeakPassword, err))
			return
		}
		partial.Password = hash
	}

	merged := service.MergePerson(current, &partial)
	updated, err := h.services.Update(ctx, *merged)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !updated {
		h.writeError(c, models.E(models.KindNotFound, msgNotFound))
		return
	}
	c.JSON(http.StatusOK, merged)
}

// @Summary      Delete person by id
// @Tags         person
// @Produce      json
// @Param        id   path      int  true  "Person id (non-zero)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /person/{id} [delete]
func (h *Handler) deletePerson(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	deleted, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !deleted {
		h.writeError(c, models.E(models.KindNotFound, msgNotFound))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
