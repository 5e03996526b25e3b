package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SettingHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetOvertimeDeduction(w http.ResponseWriter, r *http.Request)
	SaveOvertimeDeduction(w http.ResponseWriter, r *http.Request)
	GetWeekend(w http.ResponseWriter, r *http.Request)
	SaveWeekend(w http.ResponseWriter, r *http.Request)
	General(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	settingService setting.SettingService
}

func NewSettingHandler(settingService setting.SettingService) SettingHandler {
	return &settingHandlerImpl{settingService: settingService}
}

func (h *settingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingService.FindAll(r.Context(), includeDeleted(r))
	if err != nil {
		serviceError(w, "ListSettings", err)
		return
	}
	response.Success(w, result)
}

func (h *settingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingService.FindByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		serviceError(w, "GetSetting", err)
		return
	}
	response.Success(w, result)
}

// Upsert creates the setting or overwrites the one stored under the same key.
func (h *settingHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req setting.UpsertSettingRequest
	if !decodeAndValidate(w, r, "UpsertSetting", &req) {
		return
	}

	result, err := h.settingService.Upsert(r.Context(), req)
	if err != nil {
		serviceError(w, "UpsertSetting", err)
		return
	}
	response.SuccessWithMessage(w, "Setting saved successfully", result)
}

func (h *settingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.settingService.SoftDelete(r.Context(), chi.URLParam(r, "key")); err != nil {
		serviceError(w, "DeleteSetting", err)
		return
	}
	response.SuccessWithMessage(w, "Setting deleted successfully", nil)
}

func (h *settingHandlerImpl) GetOvertimeDeduction(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingService.GetOvertimeDeductionSettings(r.Context())
	if err != nil {
		serviceError(w, "GetOvertimeDeductionSettings", err)
		return
	}
	response.Success(w, result)
}

func (h *settingHandlerImpl) SaveOvertimeDeduction(w http.ResponseWriter, r *http.Request) {
	var req setting.OvertimeDeductionSettingsRequest
	if !decodeAndValidate(w, r, "SaveOvertimeDeductionSettings", &req) {
		return
	}

	result, err := h.settingService.SaveOvertimeDeductionSettings(r.Context(), req)
	if err != nil {
		serviceError(w, "SaveOvertimeDeductionSettings", err)
		return
	}
	response.SuccessWithMessage(w, "Overtime and deduction settings saved", result)
}

func (h *settingHandlerImpl) GetWeekend(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingService.GetWeekendSettings(r.Context())
	if err != nil {
		serviceError(w, "GetWeekendSettings", err)
		return
	}
	response.Success(w, result)
}

func (h *settingHandlerImpl) SaveWeekend(w http.ResponseWriter, r *http.Request) {
	var req setting.WeekendSettingsRequest
	if !decodeAndValidate(w, r, "SaveWeekendSettings", &req) {
		return
	}

	result, err := h.settingService.SaveWeekendSettings(r.Context(), req)
	if err != nil {
		serviceError(w, "SaveWeekendSettings", err)
		return
	}
	response.SuccessWithMessage(w, "Weekend settings saved", result)
}

func (h *settingHandlerImpl) General(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingService.GetGeneralSettings(r.Context())
	if err != nil {
		serviceError(w, "GetGeneralSettings", err)
		return
	}
	response.Success(w, result)
}
