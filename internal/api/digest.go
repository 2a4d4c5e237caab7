package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shapedtime/wsindex/internal/digest"
)

// DigestRequest carries the login password and the salt returned by the
// salt endpoint. Magic selects the variant for the Crypt field only.
type DigestRequest struct {
	Password string `json:"password"`
	Salt     string `json:"salt"`
	Magic    string `json:"magic"`
}

// DigestResponse contains the login digest and the intermediate crypt string
type DigestResponse struct {
	Digest string `json:"digest"`
	Crypt  string `json:"crypt,omitempty"`
}

// computeDigest derives the login digest
// POST /api/digest
func (s *Server) computeDigest(c *gin.Context) {
	var req DigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	magic := req.Magic
	if magic == "" {
		magic = digest.MagicMD5
	}

	start := time.Now()
	crypt, err := digest.SaltedCrypt(req.Password, req.Salt, magic)
	if err != nil {
		s.metrics.ObserveDigest(0, err)
		if errors.Is(err, digest.ErrUnsupportedMagic) {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to compute crypt", "error", err)
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	// the login digest is always derived from the $1$ crypt
	var sum string
	if magic == digest.MagicMD5 {
		sum = digest.SHA1Hex(crypt)
	} else {
		sum, err = digest.Digest(req.Password, req.Salt)
	}
	s.metrics.ObserveDigest(time.Since(start), err)
	if err != nil {
		slog.Error("Failed to compute digest", "error", err)
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, DigestResponse{
		Digest: sum,
		Crypt:  crypt,
	})
}
