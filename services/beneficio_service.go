package services

import (
	"context"
	"strings"
	"time"

	"socios/constants"
	"socios/dto"
	"socios/errors"
	"socios/models"
	"socios/services/logger"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

// BeneficioService resuelve el catálogo de beneficios y la elegibilidad
type BeneficioService struct {
	db     *gorm.DB
	cache  *CacheService
	logger logger.Logger
}

type BeneficioServiceOptions struct {
	DB     *gorm.DB
	Cache  *CacheService
	Logger logger.Logger
}

func NewBeneficioService(opts BeneficioServiceOptions) *BeneficioService {
	return &BeneficioService{
		db:     opts.DB,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

// filtrarVigentes deja sólo los beneficios usables en el instante dado:
// activos, dentro de su ventana de vigencia y con cupo.
func filtrarVigentes(beneficios []models.Beneficio, ahora time.Time) []models.Beneficio {
	var vigentes []models.Beneficio
	for i := range beneficios {
		if beneficios[i].VigenteEn(ahora) {
			vigentes = append(vigentes, beneficios[i])
		}
	}
	return vigentes
}

// filtrarPorAsociacion deja los beneficios habilitados para la asociación
func filtrarPorAsociacion(beneficios []models.Beneficio, asociacionID uint) []models.Beneficio {
	var habilitados []models.Beneficio
	for i := range beneficios {
		if beneficios[i].HabilitadoPara(asociacionID) {
			habilitados = append(habilitados, beneficios[i])
		}
	}
	return habilitados
}

// ListarDisponibles devuelve los beneficios que el socio puede usar hoy:
// los de comercios vinculados a su asociación (o todos los comercios si no
// tiene asociación), vigentes. Referencias desconocidas devuelven lista
// vacía, nunca error: el UI se mantiene resiliente.
func (s *BeneficioService) ListarDisponibles(ctx context.Context, socioID uint) ([]models.Beneficio, error) {
	var socio models.Socio
	if err := s.db.WithContext(ctx).First(&socio, socioID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return []models.Beneficio{}, nil
		}
		return nil, err
	}

	var beneficios []models.Beneficio
	query := s.db.WithContext(ctx).Preload("Comercio")

	if socio.AsociacionID != nil {
		query = query.
			Joins("JOIN adhesiones ON adhesiones.comercio_id = beneficios.comercio_id").
			Where("adhesiones.asociacion_id = ? AND adhesiones.estado IN ?",
				*socio.AsociacionID,
				[]string{constants.AdhesionAprobada, constants.AdhesionVinculada})
	}

	if err := query.Find(&beneficios).Error; err != nil {
		return nil, err
	}

	beneficios = filtrarVigentes(beneficios, time.Now())
	if socio.AsociacionID != nil {
		beneficios = filtrarPorAsociacion(beneficios, *socio.AsociacionID)
	}
	if beneficios == nil {
		beneficios = []models.Beneficio{}
	}
	return beneficios, nil
}

// ListarPorComercio es el listado administrativo del comercio, sin filtro
// de elegibilidad.
func (s *BeneficioService) ListarPorComercio(ctx context.Context, comercioID uint) ([]models.Beneficio, error) {
	var beneficios []models.Beneficio
	err := s.db.WithContext(ctx).
		Where("comercio_id = ?", comercioID).
		Order("updated_at desc").
		Find(&beneficios).Error
	return beneficios, err
}

// ListarPorAsociacion lista los beneficios de los comercios adheridos a la
// asociación, sin filtro de elegibilidad.
func (s *BeneficioService) ListarPorAsociacion(ctx context.Context, asociacionID uint) ([]models.Beneficio, error) {
	var beneficios []models.Beneficio
	err := s.db.WithContext(ctx).Preload("Comercio").
		Joins("JOIN adhesiones ON adhesiones.comercio_id = beneficios.comercio_id").
		Where("adhesiones.asociacion_id = ? AND adhesiones.estado IN ?",
			asociacionID,
			[]string{constants.AdhesionAprobada, constants.AdhesionVinculada}).
		Order("beneficios.updated_at desc").
		Find(&beneficios).Error
	return beneficios, err
}

// validarFiltros rechaza filtros estructurados malformados antes de tocar
// la base.
func validarFiltros(filtros dto.FiltrosBeneficio) error {
	if filtros.Estado == "" {
		return nil
	}
	switch filtros.Estado {
	case constants.BeneficioActivo, constants.BeneficioInactivo,
		constants.BeneficioVencido, constants.BeneficioAgotado:
		return nil
	}
	return errors.NewAppError(errors.ErrCodeValidation, "estado de beneficio inválido: "+filtros.Estado, nil)
}

// normalizar baja a minúsculas y quita acentos para comparar en español
func normalizar(input string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
}

// similitud entre dos cadenas normalizadas, 0..1
func similitud(a, b string) float64 {
	distancia := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distancia)/maxLen
}

// categoriasUnicas arma la lista para el matcher difuso
func categoriasUnicas(beneficios []models.Beneficio) []string {
	vistas := make(map[string]bool)
	var categorias []string
	for i := range beneficios {
		cat := normalizar(beneficios[i].Categoria)
		if cat != "" && !vistas[cat] {
			vistas[cat] = true
			categorias = append(categorias, cat)
		}
	}
	return categorias
}

// buscarEnMemoria aplica el término ya validado sobre los candidatos:
// substring insensible a mayúsculas/acentos sobre título y descripción,
// con fallback difuso por categoría.
func buscarEnMemoria(beneficios []models.Beneficio, termino string) []models.Beneficio {
	if termino == "" {
		return beneficios
	}
	normalizado := normalizar(termino)

	var cm *closestmatch.ClosestMatch
	if categorias := categoriasUnicas(beneficios); len(categorias) > 0 {
		cm = closestmatch.New(categorias, []int{2, 3})
	}

	var resultado []models.Beneficio
	for i := range beneficios {
		b := &beneficios[i]
		if strings.Contains(normalizar(b.Titulo), normalizado) ||
			strings.Contains(normalizar(b.Descripcion), normalizado) {
			resultado = append(resultado, *b)
			continue
		}
		if cm != nil && b.Categoria != "" {
			match := cm.Closest(normalizado)
			if match == normalizar(b.Categoria) && similitud(match, normalizado) >= 0.6 {
				resultado = append(resultado, *b)
			}
		}
	}
	return resultado
}

// Buscar corre la búsqueda de beneficios con término libre más filtros
// estructurados.
func (s *BeneficioService) Buscar(ctx context.Context, termino string, filtros dto.FiltrosBeneficio) ([]models.Beneficio, error) {
	if err := validarFiltros(filtros); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Preload("Comercio")
	if filtros.Estado != "" {
		query = query.Where("estado = ?", filtros.Estado)
	}
	if filtros.Categoria != "" {
		query = query.Where("categoria ILIKE ?", filtros.Categoria)
	}
	if filtros.ComercioID != 0 {
		query = query.Where("comercio_id = ?", filtros.ComercioID)
	}

	var beneficios []models.Beneficio
	if err := query.Find(&beneficios).Error; err != nil {
		return nil, err
	}

	resultado := buscarEnMemoria(beneficios, termino)
	if resultado == nil {
		resultado = []models.Beneficio{}
	}
	return resultado, nil
}

// ReconciliarContadores reconstruye usos_actuales de cada beneficio desde
// el historial de usos exitosos y re-deriva el estado agotado. Los
// contadores son una proyección: la fuente de verdad es beneficio_usos.
func (s *BeneficioService) ReconciliarContadores(ctx context.Context) (int, error) {
	var beneficios []models.Beneficio
	if err := s.db.WithContext(ctx).Find(&beneficios).Error; err != nil {
		return 0, err
	}

	corregidos := 0
	for i := range beneficios {
		b := &beneficios[i]

		var usosReales int64
		if err := s.db.WithContext(ctx).Model(&models.BeneficioUso{}).
			Where("beneficio_id = ? AND resultado = ?", b.ID, constants.ValidacionExitosa).
			Count(&usosReales).Error; err != nil {
			s.logger.Error("no se pudo contar los usos del beneficio %d: %v", b.ID, err)
			continue
		}

		estado := b.Estado
		if b.LimiteUsos != nil && int(usosReales) >= *b.LimiteUsos && estado == constants.BeneficioActivo {
			estado = constants.BeneficioAgotado
		}

		if int(usosReales) == b.UsosActuales && estado == b.Estado {
			continue
		}

		if err := s.db.WithContext(ctx).Model(b).
			Updates(map[string]interface{}{
				"usos_actuales": int(usosReales),
				"estado":        estado,
			}).Error; err != nil {
			s.logger.Error("no se pudo reconciliar el beneficio %d: %v", b.ID, err)
			continue
		}
		corregidos++
	}

	if corregidos > 0 && s.cache != nil {
		if err := s.cache.Invalidate(ctx, "beneficios"); err != nil {
			s.logger.Error("no se pudo invalidar el cache de beneficios: %v", err)
		}
	}

	return corregidos, nil
}

// MarcarVencidos pasa a vencido todo beneficio activo cuya ventana ya cerró
func (s *BeneficioService) MarcarVencidos(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Beneficio{}).
		Where("estado = ? AND fecha_fin < ?", constants.BeneficioActivo, time.Now()).
		Update("estado", constants.BeneficioVencido)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 && s.cache != nil {
		if err := s.cache.Invalidate(ctx, "beneficios"); err != nil {
			s.logger.Error("no se pudo invalidar el cache de beneficios: %v", err)
		}
	}
	return res.RowsAffected, nil
}
