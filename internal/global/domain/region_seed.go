package domain

// DefaultRegions es la carga inicial de provincias y ciudades (códigos BPS).
func DefaultRegions() ([]*Province, []*City) {
	provinces := []*Province{
		{ID: 11, Name: "Aceh"},
		{ID: 31, Name: "DKI Jakarta"},
		{ID: 32, Name: "Jawa Barat"},
		{ID: 33, Name: "Jawa Tengah"},
		{ID: 34, Name: "DI Yogyakarta"},
		{ID: 35, Name: "Jawa Timur"},
		{ID: 51, Name: "Bali"},
	}
	cities := []*City{
		{ID: 1171, ProvinceID: 11, Name: "Kota Banda Aceh"},
		{ID: 1173, ProvinceID: 11, Name: "Kota Langsa"},
		{ID: 3171, ProvinceID: 31, Name: "Kota Jakarta Selatan"},
		{ID: 3172, ProvinceID: 31, Name: "Kota Jakarta Timur"},
		{ID: 3173, ProvinceID: 31, Name: "Kota Jakarta Pusat"},
		{ID: 3273, ProvinceID: 32, Name: "Kota Bandung"},
		{ID: 3271, ProvinceID: 32, Name: "Kota Bogor"},
		{ID: 3374, ProvinceID: 33, Name: "Kota Semarang"},
		{ID: 3372, ProvinceID: 33, Name: "Kota Surakarta"},
		{ID: 3471, ProvinceID: 34, Name: "Kota Yogyakarta"},
		{ID: 3404, ProvinceID: 34, Name: "Kabupaten Sleman"},
		{ID: 3578, ProvinceID: 35, Name: "Kota Surabaya"},
		{ID: 3573, ProvinceID: 35, Name: "Kota Malang"},
		{ID: 5171, ProvinceID: 51, Name: "Kota Denpasar"},
		{ID: 5103, ProvinceID: 51, Name: "Kabupaten Badung"},
	}
	return provinces, cities
}
