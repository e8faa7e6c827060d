package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

const (
	MsgKMInitialRequired = "KM Inicial é obrigatório."
	MsgKMInitialNumeric  = "KM Inicial deve ser um número válido."
	MsgKMInitialNegative = "KM Inicial não pode ser negativo."
	MsgKMInitialAboveEnd = "KM Inicial não pode ser maior que o KM Final."

	MsgKMFinalRequired      = "KM Final é obrigatório."
	MsgKMFinalNumeric       = "KM Final deve ser um número válido."
	MsgKMFinalNegative      = "KM Final não pode ser negativo."
	MsgKMFinalBeforeInitial = "KM Inicial deve ser registrado antes do KM Final."
	MsgKMFinalBelowInitial  = "KM Final não pode ser menor que o KM Inicial."

	MsgAllocationEmpty = "Selecione ao menos um veículo ou um motorista."
)

// KMValue keeps the raw text of a mileage field so that "missing" and
// "non-numeric" can be told apart. It accepts JSON numbers and strings.
type KMValue struct {
	Raw string
}

func (k *KMValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		k.Raw = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		k.Raw = s
		return nil
	}
	k.Raw = string(b)
	return nil
}

func parseKM(raw, required, numeric, negative string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ValidationError{Field: "km", Msg: required}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.ValidationError{Field: "km", Msg: numeric}
	}
	if v < 0 {
		return 0, domain.ValidationError{Field: "km", Msg: negative}
	}
	return v, nil
}

// ValidateKMInitial parses an initial odometer reading.
func ValidateKMInitial(raw string) (float64, error) {
	v, err := parseKM(raw, MsgKMInitialRequired, MsgKMInitialNumeric, MsgKMInitialNegative)
	if err != nil {
		return 0, withField(err, "km_inicial")
	}
	return v, nil
}

// ValidateKMFinal parses a final reading against the trip's current initial
// reading. A missing initial reading is reported before anything else.
func ValidateKMFinal(kmInitial *float64, raw string) (float64, error) {
	if kmInitial == nil {
		return 0, domain.ValidationError{Field: "km_final", Msg: MsgKMFinalBeforeInitial}
	}
	v, err := parseKM(raw, MsgKMFinalRequired, MsgKMFinalNumeric, MsgKMFinalNegative)
	if err != nil {
		return 0, withField(err, "km_final")
	}
	if v < *kmInitial {
		return 0, domain.ValidationError{Field: "km_final", Msg: MsgKMFinalBelowInitial}
	}
	return v, nil
}

// ValidateAllocation requires at least one positive id. Non-positive ids are
// treated as unset.
func ValidateAllocation(vehicleID, driverID *int64) (Allocation, error) {
	out := Allocation{}
	if vehicleID != nil && *vehicleID > 0 {
		v := *vehicleID
		out.VehicleID = &v
	}
	if driverID != nil && *driverID > 0 {
		d := *driverID
		out.DriverID = &d
	}
	if out.VehicleID == nil && out.DriverID == nil {
		return out, domain.ValidationError{Field: "vehicleId", Msg: MsgAllocationEmpty}
	}
	return out, nil
}

func withField(err error, field string) error {
	if ve, ok := err.(domain.ValidationError); ok {
		ve.Field = field
		return ve
	}
	return err
}
