package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/checkin-backend-go/internal/handler/http/response"
	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeSize is the edge of the poster image in pixels.
const QRCodeSize = 512

type QRCodeHandler interface {
	Poster(w http.ResponseWriter, r *http.Request)
}

type qrCodeHandlerImpl struct {
	target string
}

// NewQRCodeHandler points the poster at the public check-in page of publicURL.
func NewQRCodeHandler(publicURL string) QRCodeHandler {
	return &qrCodeHandlerImpl{target: strings.TrimRight(publicURL, "/") + "/mark"}
}

func (h *qrCodeHandlerImpl) Poster(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(h.target, qrcode.Medium, QRCodeSize)
	if err != nil {
		slog.Error("failed to encode QR code", "target", h.target, "error", err)
		response.InternalServerError(w, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
