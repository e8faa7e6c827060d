package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

type VehicleGetter interface {
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
}

// DocsService renders the trip sheet handed to the driver.
type DocsService struct {
	Trips     TripStore
	Vehicles  VehicleGetter
	Users     UserGetter
	Location  *time.Location
	RequestID string
	Loader    func(ctx context.Context, tripID int64) (tripSheetData, error)
}

type tripSheetData struct {
	Trip         models.Trip
	VehiclePlate string
	VehicleModel string
	DriverName   string
	DriverPhone  string
	GeneratedAt  time.Time
}

// TripSheet returns the PDF bytes and a download file name.
func (s DocsService) TripSheet(ctx context.Context, tripID int64) ([]byte, string, error) {
	data, err := s.loadTripSheetData(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "trip_sheet", fmt.Sprintf("trip_id=%d", tripID))
	return buildTripSheetPDF(data, s.Location)
}

func (s DocsService) loadTripSheetData(ctx context.Context, tripID int64) (tripSheetData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, tripID)
	}
	out := tripSheetData{GeneratedAt: time.Now()}
	t, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return out, err
	}
	out.Trip = t

	// Missing vehicle or driver rows leave the fields blank; the sheet is
	// still useful without them.
	if t.AllocatedVehicleID != nil && s.Vehicles != nil {
		if v, err := s.Vehicles.GetByID(ctx, *t.AllocatedVehicleID); err == nil {
			out.VehiclePlate = v.Plate
			out.VehicleModel = v.Model
		}
	}
	if t.AllocatedDriverID != nil && s.Users != nil {
		if u, err := s.Users.GetByID(ctx, *t.AllocatedDriverID); err == nil {
			out.DriverName = u.Name
			out.DriverPhone = u.Phone
		}
	}
	return out, nil
}

func buildTripSheetPDF(d tripSheetData, loc *time.Location) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("Ficha de Viagem #%d", d.Trip.TripID)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("FICHA DE VIAGEM"))
	pdf.Ln(12)

	t := d.Trip
	returnAt := "-"
	if t.ReturnAt != nil {
		returnAt = utils.FormatDateTimeBR(*t.ReturnAt, loc)
	}
	distance := "-"
	if km, ok := t.Distance(); ok {
		distance = utils.FormatKM(&km)
	}

	section(pdf, tr, "Solicitação", []string{
		fmt.Sprintf("Viagem         : #%d", t.TripID),
		fmt.Sprintf("Status         : %s", t.Status),
		fmt.Sprintf("Solicitante    : %s", utils.Fallback(t.RequesterName, "-")),
		fmt.Sprintf("Origem         : %s", utils.Fallback(t.Origin, "-")),
		fmt.Sprintf("Destino        : %s", utils.Fallback(t.Destination, "-")),
		fmt.Sprintf("Saída          : %s", utils.FormatDateTimeBR(t.DepartureAt, loc)),
		fmt.Sprintf("Retorno        : %s", returnAt),
		fmt.Sprintf("Passageiros    : %d", t.PassengerCount),
		fmt.Sprintf("Centro de custo: %s", utils.Fallback(t.CostCenter, "-")),
	})

	vehicle := "-"
	if d.VehiclePlate != "" {
		vehicle = strings.TrimSpace(d.VehiclePlate + " " + d.VehicleModel)
	}
	section(pdf, tr, "Alocação", []string{
		fmt.Sprintf("Veículo        : %s", vehicle),
		fmt.Sprintf("Motorista      : %s", utils.Fallback(d.DriverName, "-")),
		fmt.Sprintf("Telefone       : %s", utils.Fallback(d.DriverPhone, "-")),
	})

	section(pdf, tr, "Quilometragem", []string{
		fmt.Sprintf("KM Inicial     : %s", utils.FormatKM(t.KMInitial)),
		fmt.Sprintf("KM Final       : %s", utils.FormatKM(t.KMFinal)),
		fmt.Sprintf("Percorrido     : %s", distance),
	})

	if strings.TrimSpace(t.Purpose) != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr("Finalidade"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(t.Purpose), "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, tr("Gerado em "+utils.FormatDateTimeBR(d.GeneratedAt, loc)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("FICHA_VIAGEM_%d.pdf", t.TripID), nil
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr(title))
	pdf.Ln(8)
	pdf.SetFont("Courier", "", 11)
	for _, l := range lines {
		pdf.Cell(0, 6, tr(l))
		pdf.Ln(6)
	}
	pdf.Ln(4)
}
