package cep

import "time"

// Format is a document format served by descarga.do.
type Format string

const (
	FormatPDF Format = "PDF"
	FormatXML Format = "XML"
)

// Query identifies a SPEI transfer. Monto is in cents.
type Query struct {
	Fecha        time.Time
	ClaveRastreo string
	Emisor       string
	Receptor     string
	Cuenta       string
	Monto        int64
	PagoABanco   bool
}

// Party is one side of a transfer as reported in the CEP.
type Party struct {
	Banco      string
	Nombre     string
	TipoCuenta string
	Cuenta     string
	RFC        string
}

// Details is the parsed content of a CEP.
type Details struct {
	FechaOperacion    time.Time
	Hora              string
	ClaveSPEI         string
	ClaveRastreo      string
	Concepto          string
	IVA               string
	Monto             int64
	Sello             string
	NumeroCertificado string
	CadenaCDA         string
	Ordenante         Party
	Beneficiario      Party
}
