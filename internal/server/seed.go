package server

import (
	"fmt"

	"github.com/HerosSMP/Heros-shop.de/internal/auth"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository/sqlite"
)

// defaultSeedPassword is the initial admin password. The seed stores only
// its bcrypt hash; operators are expected to change it after first login.
const defaultSeedPassword = "admin123"

// defaultSeed builds the records installed on first startup: a small demo
// catalog, the storefront texts, and one admin account.
func defaultSeed(passwords *auth.PasswordService) (sqlite.SeedData, error) {
	adminHash, err := passwords.Hash(defaultSeedPassword)
	if err != nil {
		return sqlite.SeedData{}, fmt.Errorf("hashing seed admin password: %w", err)
	}

	return sqlite.SeedData{
		Products: []model.Product{
			{
				Title:       "VIP Rang",
				Description: "Erhalte VIP-Status auf unserem Minecraft Server mit exklusiven Vorteilen",
				Price:       9.99,
				Image:       "/placeholder.svg?height=300&width=300",
			},
			{
				Title:       "Premium Kit",
				Description: "Starter-Kit mit wertvollen Items für deinen Minecraft-Start",
				Price:       4.99,
				Image:       "/placeholder.svg?height=300&width=300",
			},
		},
		SiteTexts: []model.SiteText{
			{
				Key:         "site_title",
				Value:       "MINECRAFT SHOP",
				Description: "Haupttitel der Website",
			},
			{
				Key:         "hero_title",
				Value:       "MINECRAFT SERVER SHOP",
				Description: "Hero-Bereich Titel",
			},
			{
				Key:         "hero_description",
				Value:       "Entdecke exklusive Minecraft Server Items und Ränge. Bezahlung nur mit Paysafecard!",
				Description: "Hero-Bereich Beschreibung",
			},
			{
				Key:         "products_title",
				Value:       "UNSERE ARTIKEL",
				Description: "Produkte-Bereich Titel",
			},
			{
				Key:         "footer_text",
				Value:       "© 2024 Minecraft Shop. Alle Rechte vorbehalten. Nur Paysafecard-Zahlungen akzeptiert.",
				Description: "Footer Text",
			},
		},
		Users: []model.User{
			{
				Username:     "admin",
				PasswordHash: adminHash,
				Role:         model.RoleAdmin,
				Email:        "admin@example.com",
			},
		},
	}, nil
}
