package dto

// ResumenValidaciones son los agregados del dashboard sobre un rango de fechas
type ResumenValidaciones struct {
	Total               int     `json:"total"`
	Exitosas            int     `json:"exitosas"`
	Fallidas            int     `json:"fallidas"`
	PromedioDiario      float64 `json:"promedioDiario"`
	TasaExito           float64 `json:"tasaExito"`
	AsociacionesUnicas  int     `json:"asociacionesUnicas"`
	ComerciosUnicos     int     `json:"comerciosUnicos"`
	SociosUnicos        int     `json:"sociosUnicos"`
	BeneficioMasUsado   *uint   `json:"beneficioMasUsado,omitempty"`
	UsosBeneficioTop    int     `json:"usosBeneficioTop"`
}

// BucketDiario es el rollup de un día calendario
type BucketDiario struct {
	Fecha    string `json:"fecha"` // YYYY-MM-DD
	Total    int    `json:"total"`
	Exitosas int    `json:"exitosas"`
	Fallidas int    `json:"fallidas"`
}

// BucketHora es el rollup de una hora local (0-23), sin distinguir fecha
type BucketHora struct {
	Hora  int `json:"hora"`
	Total int `json:"total"`
}
