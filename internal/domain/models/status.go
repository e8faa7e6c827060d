package models

import (
	"strings"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

// TripStatus is the lifecycle state of a trip request. Any value of the
// vocabulary may be written from any other; there is no transition graph.
type TripStatus string

const (
	TripPending   TripStatus = "Pendente"
	TripApproved  TripStatus = "Aprovada"
	TripRejected  TripStatus = "Recusada"
	TripScheduled TripStatus = "Agendada"
	TripOngoing   TripStatus = "Andamento"
	TripCompleted TripStatus = "Concluida"
	TripCanceled  TripStatus = "Cancelada"
)

var tripStatuses = []TripStatus{
	TripPending, TripApproved, TripRejected, TripScheduled, TripOngoing, TripCompleted, TripCanceled,
}

// TripStatuses lists the accepted trip status values.
func TripStatuses() []TripStatus {
	out := make([]TripStatus, len(tripStatuses))
	copy(out, tripStatuses)
	return out
}

// ParseTripStatus accepts exact values and case/accents-insensitive variants
// ("concluída", "CANCELADA").
func ParseTripStatus(s string) (TripStatus, error) {
	key := foldStatus(s)
	for _, st := range tripStatuses {
		if foldStatus(string(st)) == key {
			return st, nil
		}
	}
	return "", domain.ValidationError{Field: "status", Msg: "Status inválido: " + strings.TrimSpace(s)}
}

// RouteStatus is the status vocabulary of scheduled routes. It overlaps with
// TripStatus but is a distinct type; the two are not interchangeable.
type RouteStatus string

const (
	RouteScheduled RouteStatus = "Agendada"
	RouteOngoing   RouteStatus = "Andamento"
	RouteCompleted RouteStatus = "Concluida"
	RouteCanceled  RouteStatus = "Cancelada"
)

var routeStatuses = []RouteStatus{RouteScheduled, RouteOngoing, RouteCompleted, RouteCanceled}

func RouteStatuses() []RouteStatus {
	out := make([]RouteStatus, len(routeStatuses))
	copy(out, routeStatuses)
	return out
}

func ParseRouteStatus(s string) (RouteStatus, error) {
	key := foldStatus(s)
	for _, st := range routeStatuses {
		if foldStatus(string(st)) == key {
			return st, nil
		}
	}
	return "", domain.ValidationError{Field: "status", Msg: "Status de rota inválido: " + strings.TrimSpace(s)}
}

// RequestStatus is shared by caronas.
type RequestStatus string

const (
	RequestPending  RequestStatus = "Pendente"
	RequestApproved RequestStatus = "Aprovada"
	RequestRejected RequestStatus = "Recusada"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	key := foldStatus(s)
	for _, st := range []RequestStatus{RequestPending, RequestApproved, RequestRejected} {
		if foldStatus(string(st)) == key {
			return st, nil
		}
	}
	return "", domain.ValidationError{Field: "status", Msg: "Status inválido: " + strings.TrimSpace(s)}
}

type EvaluationStatus string

const (
	EvaluationPending  EvaluationStatus = "Pendente"
	EvaluationAnswered EvaluationStatus = "Concluida"
)

func ParseEvaluationStatus(s string) (EvaluationStatus, error) {
	key := foldStatus(s)
	for _, st := range []EvaluationStatus{EvaluationPending, EvaluationAnswered} {
		if foldStatus(string(st)) == key {
			return st, nil
		}
	}
	return "", domain.ValidationError{Field: "status", Msg: "Status inválido: " + strings.TrimSpace(s)}
}

var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u",
	"ç", "c",
)

func foldStatus(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}
