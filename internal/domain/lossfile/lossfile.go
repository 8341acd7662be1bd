// Package lossfile define el contrato de archivo plano de mermas: el formato
// de línea y el esquema de nombres que comparten el pipeline de exportación
// (escritor) y el de importación (lector).
//
// Formato de línea, 5 campos separados por "|", una línea por entrada,
// terminadas en \n (el archivo conserva el salto final):
//
//	<codigo>|<nombre>|<cantidad>|<costo unitario 2 decimales>|<fecha RFC3339>
//
// Nombre de archivo: motivo<código con cero a la izquierda>_<AAAAMMDD>.txt,
// bajo el subdirectorio motivos/motivo<código>/. Una re-exportación del mismo
// día sobreescribe el archivo del día.
package lossfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
)

const (
	// Delimiter separador de campos.
	Delimiter = "|"
	// FieldCount número exacto de campos por línea.
	FieldCount = 5
	// Ext extensión de los archivos exportados.
	Ext = ".txt"

	filePrefix = "motivo"
	dirName    = "motivos"
	dateLayout = "20060102"
)

// Line es una línea ya decodificada de un archivo de mermas.
type Line struct {
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	CreatedAt   time.Time // cero si la fecha no se pudo interpretar
}

// FormatLine serializa una entrada como línea del archivo (sin salto final).
// El delimitador dentro del nombre se reemplaza por "/" para no romper el formato.
func FormatLine(e *entity.Entry) string {
	name := strings.ReplaceAll(e.ProductName, Delimiter, "/")
	return strings.Join([]string{
		e.ProductCode,
		name,
		e.Quantity.String(),
		e.UnitCost.StringFixed(2),
		e.CreatedAt.UTC().Format(time.RFC3339),
	}, Delimiter)
}

// Render produce el contenido completo del archivo para un conjunto de
// entradas, en el orden recibido, con salto de línea final.
func Render(entries []*entity.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(FormatLine(e))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseLine decodifica una línea. Los errores envuelven domain.ErrFormat:
// número de campos distinto de 5, código o nombre vacíos, o cantidad/costo
// no numéricos. La fecha se interpreta de forma tolerante (RFC3339 o
// AAAA-MM-DD); si no se puede, CreatedAt queda en cero y decide el llamador.
func ParseLine(raw string) (*Line, error) {
	parts := strings.Split(raw, Delimiter)
	if len(parts) != FieldCount {
		return nil, fmt.Errorf("%w: se esperaban %d campos, hay %d", domain.ErrFormat, FieldCount, len(parts))
	}
	code := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: código y nombre de producto son requeridos", domain.ErrFormat)
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("%w: cantidad no numérica %q", domain.ErrFormat, parts[2])
	}
	if !qty.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrFormat)
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, fmt.Errorf("%w: costo no numérico %q", domain.ErrFormat, parts[3])
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrFormat)
	}
	return &Line{
		ProductCode: code,
		ProductName: name,
		Quantity:    qty,
		UnitCost:    cost,
		CreatedAt:   parseDate(strings.TrimSpace(parts[4])),
	}, nil
}

// FileName devuelve el nombre de archivo para un motivo y fecha dados:
// motivoXX_AAAAMMDD.txt.
func FileName(reasonCode string, date time.Time) string {
	return filePrefix + PadCode(reasonCode) + "_" + date.Format(dateLayout) + Ext
}

// ReasonDir devuelve la ruta relativa del directorio del motivo bajo el
// directorio base de exportación: motivos/motivoXX.
func ReasonDir(reasonCode string) string {
	return dirName + "/" + filePrefix + PadCode(reasonCode)
}

// PadCode rellena el código de motivo con cero a la izquierda a dos dígitos
// ("1" -> "01"). Códigos de dos o más caracteres quedan igual.
func PadCode(code string) string {
	if len(code) >= 2 {
		return code
	}
	return strings.Repeat("0", 2-len(code)) + code
}

func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
