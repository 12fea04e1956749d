package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	campersvc "camperhub/internal/app/services/campers"
	domainbooking "camperhub/internal/domain/booking"
	domaincamper "camperhub/internal/domain/camper"
	domainpricing "camperhub/internal/domain/pricing"
	domainrange "camperhub/internal/domain/shared/daterange"
	domainuser "camperhub/internal/domain/user"
)

// respondDomainError translates domain and service errors into HTTP
// responses. Anything unmapped becomes a 500 without leaking internals.
func respondDomainError(c *gin.Context, err error) {
	var minStay *domainpricing.MinStayError
	var conflict *domainpricing.ConflictError
	var extraSel *domainpricing.ExtraSelectionError
	var windowOrder domaincamper.WindowOrderError
	var windowOverlap domaincamper.WindowOverlapError

	switch {
	case errors.Is(err, domainpricing.ErrInvalidRange) || errors.Is(err, domainrange.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
	case errors.As(err, &minStay):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        minStay.Error(),
			"requiredDays": minStay.RequiredDays,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "requested dates are not available",
			"conflicts": conflictPayload(conflict),
		})
	case errors.As(err, &extraSel):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": extraSel.Error()})
	case errors.As(err, &windowOrder):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": windowOrder.Error()})
	case errors.As(err, &windowOverlap):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": windowOverlap.Error()})
	case errors.Is(err, domaincamper.ErrNotFound),
		errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainuser.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, campersvc.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	case errors.Is(err, domaincamper.ErrNegativePrice),
		errors.Is(err, domaincamper.ErrNegativeFee),
		errors.Is(err, domaincamper.ErrMinRentalDays),
		errors.Is(err, domaincamper.ErrNameRequired),
		errors.Is(err, domaincamper.ErrExtraNameMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domainuser.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type conflictEntry struct {
	Kind      string    `json:"kind"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Reference string    `json:"reference,omitempty"`
}

func conflictPayload(err *domainpricing.ConflictError) []conflictEntry {
	entries := make([]conflictEntry, 0, len(err.Conflicts))
	for _, conflict := range err.Conflicts {
		entries = append(entries, conflictEntry{
			Kind:      string(conflict.Kind),
			From:      conflict.From,
			To:        conflict.To,
			Reference: conflict.Reference,
		})
	}
	return entries
}
