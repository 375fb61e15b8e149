// internal/app/features/donations/create.go
package donations

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vslopes/doahub/internal/app/system/timeouts"
	"github.com/vslopes/doahub/internal/app/system/uploads"
	"github.com/vslopes/doahub/internal/app/system/webutil"
	"github.com/vslopes/doahub/internal/domain/models"
)

// maxFormMemory bounds multipart parsing; the image itself is capped
// separately at uploads.MaxImageSize.
const maxFormMemory = 8 << 20

// Create handles POST / — a multipart intake form with the donation
// fields plus one optional image under the "image_url" field name.
//
// Form fields are taken as submitted, without validation: the intake
// form is filled by people in an emergency and a half-filled request is
// still worth recording. Only the image is validated (format and size).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, "Formulário inválido")
		return
	}

	d := models.Donation{
		NumeroPessoas: formInt(r, "numeroPessoas"),
		KitHigiene:    strings.TrimSpace(r.FormValue("kitHigiene")),
		Agua:          strings.TrimSpace(r.FormValue("agua")),
		Alimentos:     strings.TrimSpace(r.FormValue("alimentos")),
		Roupas:        strings.TrimSpace(r.FormValue("roupas")),
		ProdLimp:      strings.TrimSpace(r.FormValue("prodLimp")),
		Nome:          strings.TrimSpace(r.FormValue("nome")),
		Whatsapp:      formInt64(r, "whatsapp"),
		EndAfe:        strings.TrimSpace(r.FormValue("endAfe")),
		EndAtu:        strings.TrimSpace(r.FormValue("endAtu")),
	}

	file, header, fileErr := r.FormFile("image_url")
	if fileErr == nil && header != nil && header.Size > 0 {
		defer file.Close()

		ref, err := h.Uploads.Save(header.Filename, file, header.Size)
		if err != nil {
			if errors.Is(err, uploads.ErrInvalidFormat) {
				webutil.Error(w, http.StatusUnprocessableEntity,
					"Por favor, envie uma imagem no formato jpg, jpeg ou png")
				return
			}
			if errors.Is(err, uploads.ErrTooLarge) {
				webutil.Error(w, http.StatusUnprocessableEntity,
					"A imagem deve ter no máximo 4 MB")
				return
			}
			h.Log.Error("store upload failed", zap.Error(err))
			webutil.Error(w, http.StatusInternalServerError, msgServerError)
			return
		}
		d.ImageURL = ref
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Pending.Create(ctx, d)
	if err != nil {
		h.Log.Error("create donation failed", zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, created)
}

// formInt reads a form value as int, tolerating absent or malformed
// input the way the original service did (zero value).
func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n
}

func formInt64(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	return n
}
