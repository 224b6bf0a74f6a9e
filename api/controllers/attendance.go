package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/api/responses"
	"github.com/mfadlih/cukurid-backend/api/validators"
	attendancesvc "github.com/mfadlih/cukurid-backend/internal/attendance"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

// Shift photos arrive as multipart uploads; anything bigger than this is
// rejected before buffering.
const maxPhotoUploadBytes = 8 << 20

// AttendanceClockIn opens a shift for the authenticated employee.
func AttendanceClockIn(svc attendancesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		outletRaw := strings.TrimSpace(r.FormValue("outlet_id"))
		outletID, err := uuid.Parse(outletRaw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "outlet_id form field must be a uuid"))
			return
		}

		photo, header, err := r.FormFile("photo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "photo form file is required"))
			return
		}
		defer photo.Close()

		record, err := svc.ClockIn(r.Context(), attendancesvc.ClockInInput{
			EmployeeID:  employeeID,
			OutletID:    outletID,
			Photo:       photo,
			ContentType: header.Header.Get("Content-Type"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// AttendanceClockOut closes the authenticated employee's open shift.
func AttendanceClockOut(svc attendancesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID, err := employeeFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		photo, header, err := r.FormFile("photo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "photo form file is required"))
			return
		}
		defer photo.Close()

		record, err := svc.ClockOut(r.Context(), attendancesvc.ClockOutInput{
			EmployeeID:  employeeID,
			Photo:       photo,
			ContentType: header.Header.Get("Content-Type"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// AttendanceListDay lists one outlet's records for a single day
// (day query parameter, defaults to today).
func AttendanceListDay(svc attendancesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outletID, err := urlParamUUID(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day := time.Now()
		if parsed, parseErr := validators.ParseQueryTime(r, "day"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if parsed != nil {
			day = *parsed
		}

		records, err := svc.ListDay(r.Context(), outletID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
