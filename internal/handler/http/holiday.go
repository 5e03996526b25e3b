package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ByYear(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := holiday.HolidayFilter{
		Year:           queryInt(r, "year"),
		IncludeDeleted: includeDeleted(r),
	}
	result, err := h.holidayService.FindAll(r.Context(), filter)
	if err != nil {
		serviceError(w, "ListHolidays", err)
		return
	}
	response.Success(w, result)
}

func (h *holidayHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.holidayService.FindByID(r.Context(), id)
	if err != nil {
		serviceError(w, "GetHoliday", err)
		return
	}
	response.Success(w, result)
}

func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if !decodeAndValidate(w, r, "CreateHoliday", &req) {
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		serviceError(w, "CreateHoliday", err)
		return
	}
	response.Created(w, "Official holiday created successfully", result)
}

func (h *holidayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := holiday.UpdateHolidayRequest{ID: chi.URLParam(r, "id")}
	if !decodeAndValidate(w, r, "UpdateHoliday", &req) {
		return
	}

	result, err := h.holidayService.Update(r.Context(), req)
	if err != nil {
		serviceError(w, "UpdateHoliday", err)
		return
	}
	response.SuccessWithMessage(w, "Official holiday updated successfully", result)
}

func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.holidayService.SoftDelete(r.Context(), id); err != nil {
		serviceError(w, "DeleteHoliday", err)
		return
	}
	response.SuccessWithMessage(w, "Official holiday deleted successfully", nil)
}

// ByYear lists the holidays that apply to a year, recurring ones included.
func (h *holidayHandlerImpl) ByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || !validator.IsValidYear(year) {
		var errs validator.ValidationErrors
		errs.Add("year", "year must be 2008 or later")
		response.HandleError(w, errs)
		return
	}

	result, err := h.holidayService.GetByYear(r.Context(), year)
	if err != nil {
		serviceError(w, "HolidaysByYear", err)
		return
	}
	response.Success(w, result)
}

// Check reports whether ?date=YYYY-MM-DD is an official holiday.
func (h *holidayHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(calendar.DateLayout, r.URL.Query().Get("date"))
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("date", "date must be in YYYY-MM-DD format")
		response.HandleError(w, errs)
		return
	}

	isHoliday, err := h.holidayService.IsHoliday(r.Context(), date)
	if err != nil {
		serviceError(w, "CheckHoliday", err)
		return
	}
	response.Success(w, map[string]any{
		"date":       date.Format(calendar.DateLayout),
		"is_holiday": isHoliday,
	})
}
