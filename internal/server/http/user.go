package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/server/services"
	"github.com/dmitrijs2005/gopherblog/internal/server/storage"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// formOverhead is the room left for text fields and multipart framing on
// top of the image size cap.
const formOverhead = 64 << 10

type profileJSON struct {
	FullName *string `json:"fullName"`
	Age      *int    `json:"age"`
	Bio      *string `json:"bio"`
}

func (h *handler) profile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// updateProfile accepts either a JSON body or a multipart form with an
// optional "image" file.
func (h *handler) updateProfile(c *gin.Context) {
	var (
		upd   services.ProfileUpdate
		image *storage.Image
		ok    bool
	)

	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		upd, image, ok = h.bindProfileForm(c)
	} else {
		upd, ok = bindProfileJSON(c)
	}
	if !ok {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUserID(c), upd, image)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User details updated successfully", "user": user})
}

func bindProfileJSON(c *gin.Context) (services.ProfileUpdate, bool) {
	var req profileJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return services.ProfileUpdate{}, false
	}
	return services.ProfileUpdate{FullName: req.FullName, Age: req.Age, Bio: req.Bio}, true
}

func (h *handler) bindProfileForm(c *gin.Context) (services.ProfileUpdate, *storage.Image, bool) {
	var upd services.ProfileUpdate

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)
	if err := c.Request.ParseMultipartForm(h.maxUpload + formOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.writeError(c, common.ErrUploadTooLarge)
		} else {
			badRequest(c, msgInvalidBody)
		}
		return upd, nil, false
	}

	if v, ok := c.GetPostForm("fullName"); ok {
		upd.FullName = &v
	}
	if v, ok := c.GetPostForm("age"); ok && strings.TrimSpace(v) != "" {
		age, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			badRequest(c, msgAgeNotANumber)
			return upd, nil, false
		}
		upd.Age = &age
	}
	if v, ok := c.GetPostForm("bio"); ok {
		upd.Bio = &v
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return upd, nil, true
	}
	if err != nil {
		badRequest(c, msgInvalidBody)
		return upd, nil, false
	}
	if fh.Size > h.maxUpload {
		h.writeError(c, common.ErrUploadTooLarge)
		return upd, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		h.writeError(c, err)
		return upd, nil, false
	}
	defer f.Close()

	img, err := storage.ReadImage(f, h.maxUpload)
	if err != nil {
		h.writeError(c, err)
		return upd, nil, false
	}

	return upd, img, true
}

func (h *handler) serveUpload(c *gin.Context) {
	loc, err := h.images.Resolve(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": msgNotFoundPlain})
			return
		}
		h.writeError(c, err)
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	if loc.RedirectURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, loc.RedirectURL)
		return
	}
	c.File(loc.FilePath)
}
