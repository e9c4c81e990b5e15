package seed

import (
	"time"

	"aura-bijoux/internal/model"
)

var launch = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

// DefaultCatalog is used when no seed files are configured.
func DefaultCatalog() []model.Product {
	piece := func(id, name string, cat model.Category, color model.Color, price string, stock int, rating float64, daysOld int, bestSeller bool, description string) model.Product {
		return model.Product{
			ID:           id,
			Name:         name,
			Category:     cat,
			Color:        color,
			Price:        model.MustMoney(price),
			Stock:        stock,
			Images:       []string{"https://images.aurabijoux.pt/" + id + ".jpg"},
			Rating:       rating,
			IsNew:        daysOld <= 30,
			IsBestSeller: bestSeller,
			Description:  description,
			Reviews:      []model.Review{},
			CreatedAt:    launch.AddDate(0, 0, -daysOld),
		}
	}

	return []model.Product{
		piece("PRD-001", "Colar Lua Crescente", model.CategoryNecklaces, model.ColorGold, "34.90", 12, 4.9, 90, true,
			"Colar delicado com pendente de lua, banhado a ouro 18k."),
		piece("PRD-002", "Brincos Argola Essencial", model.CategoryEarrings, model.ColorSilver, "19.90", 25, 4.7, 120, true,
			"Argolas leves em prata para o dia a dia."),
		piece("PRD-003", "Pulseira Elos Rosé", model.CategoryBracelets, model.ColorRose, "27.50", 4, 4.6, 20, false,
			"Pulseira de elos finos com acabamento rosé."),
		piece("PRD-004", "Anel Solitário Aurora", model.CategoryRings, model.ColorGold, "24.00", 0, 4.8, 60, false,
			"Anel ajustável com zircónia central."),
		piece("PRD-005", "Conjunto Pérola Clássica", model.CategorySets, model.ColorSilver, "59.90", 6, 5.0, 10, true,
			"Colar e brincos com pérolas de água doce."),
		piece("PRD-006", "Brincos Gota Cristal", model.CategoryEarrings, model.ColorRose, "22.90", 3, 4.5, 5, false,
			"Brincos pendentes com cristal em gota."),
		piece("PRD-007", "Colar Camadas Sol", model.CategoryNecklaces, model.ColorGold, "42.00", 9, 4.4, 45, false,
			"Colar em duas camadas com medalha de sol."),
		piece("PRD-008", "Anel Trio Entrelaçado", model.CategoryRings, model.ColorSilver, "18.50", 15, 4.3, 200, false,
			"Três aros finos entrelaçados em prata."),
	}
}
