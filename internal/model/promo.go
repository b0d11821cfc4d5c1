package model

import (
	"io"
	"strconv"
	"strings"
	"time"
)

// Flash messages shown after a promo mutation.
const (
	FlashKey     = "message"
	FlashCreated = "Data berhasil ditambahkan"
	FlashEdited  = "Data berhasil diedit"
	FlashDeleted = "Data berhasil dihapus"
)

// Promo represents a promotional offer shown on the storefront.
type Promo struct {
	ID         int64     `json:"id" db:"id"`
	Judul      string    `json:"judul" db:"judul"`
	Harga      float64   `json:"harga" db:"harga"`
	Deskripsi1 string    `json:"deskripsi_1" db:"deskripsi_1"`
	Deskripsi2 string    `json:"deskripsi_2" db:"deskripsi_2"`
	Kelebihan1 string    `json:"kelebihan_1" db:"kelebihan_1"`
	Kelebihan2 string    `json:"kelebihan_2" db:"kelebihan_2"`
	Kelebihan3 string    `json:"kelebihan_3" db:"kelebihan_3"`
	Image      string    `json:"image" db:"image"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PromoForm is the field set submitted by the create and edit forms.
// The image travels separately as an ImageUpload.
type PromoForm struct {
	Judul      string `form:"judul" validate:"required"`
	Harga      string `form:"harga" validate:"required,numeric,price"`
	Deskripsi1 string `form:"deskripsi_1" validate:"required"`
	Deskripsi2 string `form:"deskripsi_2" validate:"required"`
	Kelebihan1 string `form:"kelebihan_1" validate:"required"`
	Kelebihan2 string `form:"kelebihan_2" validate:"required"`
	Kelebihan3 string `form:"kelebihan_3" validate:"required"`
}

// PromoFormFromValues builds a form from submitted values, trimming
// surrounding whitespace so blank fields count as missing.
func PromoFormFromValues(get func(key string) string) PromoForm {
	return PromoForm{
		Judul:      strings.TrimSpace(get("judul")),
		Harga:      strings.TrimSpace(get("harga")),
		Deskripsi1: strings.TrimSpace(get("deskripsi_1")),
		Deskripsi2: strings.TrimSpace(get("deskripsi_2")),
		Kelebihan1: strings.TrimSpace(get("kelebihan_1")),
		Kelebihan2: strings.TrimSpace(get("kelebihan_2")),
		Kelebihan3: strings.TrimSpace(get("kelebihan_3")),
	}
}

// PromoFormFromPromo pre-populates an edit form.
func PromoFormFromPromo(p *Promo) PromoForm {
	return PromoForm{
		Judul:      p.Judul,
		Harga:      strconv.FormatFloat(p.Harga, 'f', -1, 64),
		Deskripsi1: p.Deskripsi1,
		Deskripsi2: p.Deskripsi2,
		Kelebihan1: p.Kelebihan1,
		Kelebihan2: p.Kelebihan2,
		Kelebihan3: p.Kelebihan3,
	}
}

// Validate checks the required text fields and the price, which must fit
// the NUMERIC(12, 2) column exactly.
// A nil *ValidationError is returned when the form is valid.
func (f PromoForm) Validate() *ValidationError {
	return validateStruct(f)
}

// ApplyTo copies the form onto p. The form must have passed Validate.
func (f PromoForm) ApplyTo(p *Promo) {
	harga, _ := strconv.ParseFloat(f.Harga, 64)

	p.Judul = f.Judul
	p.Harga = harga
	p.Deskripsi1 = f.Deskripsi1
	p.Deskripsi2 = f.Deskripsi2
	p.Kelebihan1 = f.Kelebihan1
	p.Kelebihan2 = f.Kelebihan2
	p.Kelebihan3 = f.Kelebihan3
}

// ImageUpload is a file submitted in the `image` field.
type ImageUpload struct {
	// Filename is the client-supplied name, already reduced to its base name.
	Filename string
	Size     int64
	Body     io.Reader
}
