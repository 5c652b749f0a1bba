package cep

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
)

type speiTercero struct {
	XMLName           xml.Name `xml:"SPEI_Tercero"`
	FechaOperacion    string   `xml:"FechaOperacion,attr"`
	Hora              string   `xml:"Hora,attr"`
	ClaveSPEI         string   `xml:"ClaveSPEI,attr"`
	Sello             string   `xml:"sello,attr"`
	NumeroCertificado string   `xml:"numeroCertificado,attr"`
	CadenaCDA         string   `xml:"cadenaCDA,attr"`
	ClaveRastreo      string   `xml:"claveRastreo,attr"`
	Beneficiario      struct {
		Banco      string `xml:"BancoReceptor,attr"`
		Nombre     string `xml:"Nombre,attr"`
		TipoCuenta string `xml:"TipoCuenta,attr"`
		Cuenta     string `xml:"Cuenta,attr"`
		RFC        string `xml:"RFC,attr"`
		Concepto   string `xml:"Concepto,attr"`
		IVA        string `xml:"IVA,attr"`
		MontoPago  string `xml:"MontoPago,attr"`
	} `xml:"Beneficiario"`
	Ordenante struct {
		Banco      string `xml:"BancoEmisor,attr"`
		Nombre     string `xml:"Nombre,attr"`
		TipoCuenta string `xml:"TipoCuenta,attr"`
		Cuenta     string `xml:"Cuenta,attr"`
		RFC        string `xml:"RFC,attr"`
	} `xml:"Ordenante"`
}

// parseDetails decodes a CEP XML document. Banxico serves it as ISO-8859-1.
func parseDetails(raw []byte) (*Details, error) {
	var doc speiTercero
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode CEP XML: %v", ErrUnexpectedCEP, err)
	}

	d := &Details{
		Hora:              doc.Hora,
		ClaveSPEI:         doc.ClaveSPEI,
		ClaveRastreo:      doc.ClaveRastreo,
		Concepto:          doc.Beneficiario.Concepto,
		IVA:               doc.Beneficiario.IVA,
		Sello:             doc.Sello,
		NumeroCertificado: doc.NumeroCertificado,
		CadenaCDA:         doc.CadenaCDA,
		Ordenante: Party{
			Banco:      doc.Ordenante.Banco,
			Nombre:     doc.Ordenante.Nombre,
			TipoCuenta: doc.Ordenante.TipoCuenta,
			Cuenta:     doc.Ordenante.Cuenta,
			RFC:        doc.Ordenante.RFC,
		},
		Beneficiario: Party{
			Banco:      doc.Beneficiario.Banco,
			Nombre:     doc.Beneficiario.Nombre,
			TipoCuenta: doc.Beneficiario.TipoCuenta,
			Cuenta:     doc.Beneficiario.Cuenta,
			RFC:        doc.Beneficiario.RFC,
		},
	}

	if doc.FechaOperacion != "" {
		fecha, err := time.Parse("2006-01-02", doc.FechaOperacion)
		if err != nil {
			return nil, fmt.Errorf("%w: FechaOperacion %q", ErrUnexpectedCEP, doc.FechaOperacion)
		}
		d.FechaOperacion = fecha
	}

	if doc.Beneficiario.MontoPago != "" {
		monto, err := decimal.NewFromString(doc.Beneficiario.MontoPago)
		if err != nil {
			return nil, fmt.Errorf("%w: MontoPago %q", ErrUnexpectedCEP, doc.Beneficiario.MontoPago)
		}
		d.Monto = monto.Shift(2).Round(0).IntPart()
	}

	return d, nil
}

// formatMonto renders cents as the pesos amount valida.do expects.
func formatMonto(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
