package handlers

import (
	"nomina/internal/config"
	"nomina/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/auditoria/logs/
func GetAuditoriaLogs(c *gin.Context) {
	repo := repositories.AuditoriaRepository{DB: config.DB}
	logs, count, err := repo.List(ParseListParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondPage(c, logs, count)
}
