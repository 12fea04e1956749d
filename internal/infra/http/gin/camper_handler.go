package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"camperhub/internal/app/dto"
	campersvc "camperhub/internal/app/services/campers"
	"camperhub/internal/app/services/quotes"
	domaincamper "camperhub/internal/domain/camper"
	domainpricing "camperhub/internal/domain/pricing"
	"camperhub/internal/domain/shared/money"
)

type CamperHandler struct {
	Service *campersvc.Service
	Quotes  *quotes.Service
	Logger  *slog.Logger
}

type rateWindowRequest struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	StandardPrice int64     `json:"standardPrice"`
	Available     *bool     `json:"available"`
	CleaningFee   *int64    `json:"cleaningFee"`
	Deposit       *int64    `json:"deposit"`
}

type extraRequest struct {
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	PriceType string `json:"priceType"`
}

type createCamperRequest struct {
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	LicensePlate      string              `json:"licensePlate"`
	StandardPrice     int64               `json:"standardPrice"`
	Currency          string              `json:"currency"`
	MinimumRentalDays int                 `json:"minimumRentalDays"`
	CleaningFee       int64               `json:"cleaningFee"`
	Deposit           int64               `json:"deposit"`
	RateWindows       []rateWindowRequest `json:"rateWindows"`
	Extras            []extraRequest      `json:"extras"`
	SleepingPlaces    int                 `json:"sleepingPlaces"`
}

func (h CamperHandler) Create(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "camper service unavailable"})
		return
	}
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req createCamperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	created, err := h.Service.Create(c.Request.Context(), campersvc.CreateParams{
		Owner:             domaincamper.OwnerID(p.ID),
		Name:              req.Name,
		Description:       req.Description,
		LicensePlate:      req.LicensePlate,
		StandardPrice:     req.StandardPrice,
		Currency:          currency,
		MinimumRentalDays: req.MinimumRentalDays,
		CleaningFee:       req.CleaningFee,
		Deposit:           req.Deposit,
		RateWindows:       mapRateWindows(req.RateWindows, currency),
		Extras:            mapExtras(req.Extras, currency),
		SleepingPlaces:    req.SleepingPlaces,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCamperResponse(created))
}

func (h CamperHandler) Get(c *gin.Context) {
	if h.Service == nil || h.Service.Campers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "camper service unavailable"})
		return
	}
	found, err := h.Service.Campers.ByID(c.Request.Context(), domaincamper.CamperID(c.Param("id")))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCamperResponse(found))
}

type updatePricingRequest struct {
	StandardPrice     int64               `json:"standardPrice"`
	Currency          string              `json:"currency"`
	MinimumRentalDays int                 `json:"minimumRentalDays"`
	CleaningFee       int64               `json:"cleaningFee"`
	Deposit           int64               `json:"deposit"`
	RateWindows       []rateWindowRequest `json:"rateWindows"`
}

// UpdatePricing replaces the camper's pricing block. The whole rate window
// set is validated before anything changes, so a bad window leaves the
// camper untouched.
func (h CamperHandler) UpdatePricing(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "camper service unavailable"})
		return
	}
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req updatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	updated, err := h.Service.UpdatePricing(
		c.Request.Context(),
		domaincamper.CamperID(c.Param("id")),
		domaincamper.OwnerID(p.ID),
		p.IsAdmin,
		domaincamper.UpdatePricingParams{
			StandardPrice:     money.Money{Amount: req.StandardPrice, Currency: currency},
			MinimumRentalDays: req.MinimumRentalDays,
			CleaningFee:       money.Money{Amount: req.CleaningFee, Currency: currency},
			Deposit:           money.Money{Amount: req.Deposit, Currency: currency},
			RateWindows:       mapRateWindows(req.RateWindows, currency),
		},
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCamperResponse(updated))
}

type quoteExtraRequest struct {
	Name      string `json:"name"`
	Price     *int64 `json:"price"`
	PriceType string `json:"priceType"`
}

type quoteRequest struct {
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Extras    []quoteExtraRequest `json:"extras"`
}

func (h CamperHandler) Quote(c *gin.Context) {
	if h.Quotes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	selections := make([]domainpricing.ExtraSelection, 0, len(req.Extras))
	for _, extra := range req.Extras {
		sel := domainpricing.ExtraSelection{Name: extra.Name, PriceType: extra.PriceType}
		if extra.Price != nil {
			sel.Price = &money.Money{Amount: *extra.Price}
		}
		selections = append(selections, sel)
	}
	quote, err := h.Quotes.Quote(c.Request.Context(), domaincamper.CamperID(c.Param("id")), req.StartDate, req.EndDate, selections)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

func (h CamperHandler) Availability(c *gin.Context) {
	if h.Quotes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
		return
	}
	start, okStart := parseDate(c.Query("from"))
	end, okEnd := parseDate(c.Query("to"))
	if !okStart || !okEnd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to dates are required"})
		return
	}
	availability, err := h.Quotes.Availability(c.Request.Context(), domaincamper.CamperID(c.Param("id")), start, end)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAvailabilityResponse(availability))
}

// UploadPhoto accepts one multipart file under the "photo" field.
func (h CamperHandler) UploadPhoto(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "camper service unavailable"})
		return
	}
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is unreadable"})
		return
	}
	defer reader.Close()

	url, err := h.Service.AttachPhoto(
		c.Request.Context(),
		domaincamper.CamperID(c.Param("id")),
		domaincamper.OwnerID(p.ID),
		p.IsAdmin,
		file.Filename,
		reader,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func mapRateWindows(windows []rateWindowRequest, currency string) []domaincamper.RateWindow {
	out := make([]domaincamper.RateWindow, 0, len(windows))
	for _, w := range windows {
		window := domaincamper.RateWindow{
			From:          w.From,
			To:            w.To,
			StandardPrice: money.Money{Amount: w.StandardPrice, Currency: currency},
			Available:     true,
		}
		if w.Available != nil {
			window.Available = *w.Available
		}
		if w.CleaningFee != nil {
			window.CleaningFee = &money.Money{Amount: *w.CleaningFee, Currency: currency}
		}
		if w.Deposit != nil {
			window.Deposit = &money.Money{Amount: *w.Deposit, Currency: currency}
		}
		out = append(out, window)
	}
	return out
}

func mapExtras(extras []extraRequest, currency string) []domaincamper.Extra {
	out := make([]domaincamper.Extra, 0, len(extras))
	for _, e := range extras {
		out = append(out, domaincamper.Extra{
			Name:      e.Name,
			Price:     money.Money{Amount: e.Price, Currency: currency},
			PriceType: domaincamper.PriceType(e.PriceType),
		})
	}
	return out
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
