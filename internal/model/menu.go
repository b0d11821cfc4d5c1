package model

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage mapping of the menu table. The primary key is a UUID supplied by
// the application; the database never generates it.
const (
	MenuTable      = "menu"
	MenuPrimaryKey = "id_menu"
)

// MenuFillable lists the only input keys that may be mass-assigned onto a Menu.
var MenuFillable = []string{
	"nama_menu",
	"foto_menu",
	"deskripsi_menu",
	"harga_menu",
	"kategori",
}

// Menu represents a menu item.
type Menu struct {
	IDMenu        uuid.UUID `json:"id_menu" db:"id_menu" form:"id_menu"`
	NamaMenu      string    `json:"nama_menu" db:"nama_menu" form:"nama_menu" validate:"required"`
	FotoMenu      string    `json:"foto_menu" db:"foto_menu" form:"foto_menu"`
	DeskripsiMenu string    `json:"deskripsi_menu" db:"deskripsi_menu" form:"deskripsi_menu"`
	HargaMenu     float64   `json:"harga_menu" db:"harga_menu" form:"harga_menu" validate:"gte=0,lte=9999999999.99"`
	Kategori      string    `json:"kategori" db:"kategori" form:"kategori" validate:"required"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" form:"-"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" form:"-"`
}

// IsFillable reports whether key may be mass-assigned.
func IsFillable(key string) bool {
	for _, k := range MenuFillable {
		if k == key {
			return true
		}
	}
	return false
}

// Fill assigns the whitelisted keys present in input onto m. Keys outside
// MenuFillable are left untouched on m and returned, sorted, as ignored.
// A non-numeric harga_menu, or one the NUMERIC(12, 2) column cannot hold
// exactly, is reported as a validation error.
func (m *Menu) Fill(input map[string]string) (ignored []string, verr *ValidationError) {
	for key, raw := range input {
		value := strings.TrimSpace(raw)

		switch key {
		case "nama_menu":
			m.NamaMenu = value
		case "foto_menu":
			m.FotoMenu = value
		case "deskripsi_menu":
			m.DeskripsiMenu = value
		case "harga_menu":
			harga, err := strconv.ParseFloat(value, 64)
			if err != nil {
				if verr == nil {
					verr = &ValidationError{}
				}
				verr.Add("harga_menu", "Kolom harga_menu harus berupa angka.")
				continue
			}
			if !ValidPrice(value) {
				if verr == nil {
					verr = &ValidationError{}
				}
				verr.Add("harga_menu", priceMessage("harga_menu"))
				continue
			}
			m.HargaMenu = harga
		case "kategori":
			m.Kategori = value
		default:
			ignored = append(ignored, key)
		}
	}

	sort.Strings(ignored)
	return ignored, verr
}

// Validate checks the filled record.
func (m *Menu) Validate() *ValidationError {
	return validateStruct(m)
}

// ParseMenuID parses an externally supplied menu identifier.
func ParseMenuID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidMenuID
	}
	return id, nil
}
