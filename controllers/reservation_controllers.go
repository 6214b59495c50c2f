package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiminh/hotpot-pos/services"
	"github.com/haiminh/hotpot-pos/utils"
)

type ReservationController struct {
	Reservations *services.ReservationManager
}

func NewReservationController(reservations *services.ReservationManager) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	reservations, err := rc.Reservations.ActiveReservations()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

type reservationReq struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Time         string  `json:"time"`
	GuestCount   int     `json:"guest_count" binding:"required"`
	TableID      *string `json:"table_id"`
	Note         string  `json:"note"`
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var body reservationReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.AddReservation(services.AddReservationParams{
		CustomerName: body.CustomerName,
		Phone:        body.Phone,
		Time:         body.Time,
		GuestCount:   body.GuestCount,
		TableID:      body.TableID,
		Note:         body.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	reservation, err := rc.Reservations.CancelReservation(c.Param("reservation_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}

type checkInReq struct {
	TableID string `json:"table_id" binding:"required"`
}

// CheckIn -> mark the party arrived and hold their table. The session is
// started separately once they are seated.
func (rc *ReservationController) CheckIn(c *gin.Context) {
	var body checkInReq
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.CheckInReservation(c.Param("reservation_id"), body.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation checked in", reservation)
}
