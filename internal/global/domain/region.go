package domain

import sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"

const (
	ProvinceKind = "province"
	CityKind     = "city"
)

// IncludeProvince carga la provincia de cada ciudad.
const IncludeProvince = "province"

var RegionSearchFields = []string{"name"}

var RegionOrder = []sharedQuery.Sort{sharedQuery.Asc("name")}

type Province struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID         int64     `json:"id"`
	ProvinceID int64     `json:"province_id"`
	Name       string    `json:"name"`
	Province   *Province `json:"province,omitempty"`
}
