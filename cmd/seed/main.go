package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/pageza/chefapp/backend/config"
	"github.com/pageza/chefapp/backend/internal/apperr"
	"github.com/pageza/chefapp/backend/internal/database"
	"github.com/pageza/chefapp/backend/internal/logging"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/service"
	"github.com/pageza/chefapp/backend/internal/types"
)

func floatPtr(v float64) *float64 { return &v }

var sampleRecipes = []types.CreateRecipeRequest{
	{
		Title:       "Classic Margherita Pizza",
		Description: "Thin crust pizza with tomato, mozzarella and basil",
		Category:    "Main Course",
		Difficulty:  "Intermediate",
		CuisineType: "Italian",
		Dietary:     "Veg",
		PrepTime:    20,
		CookTime:    15,
		Servings:    4,
		Ingredients: models.Ingredients{
			{Item: "pizza dough", Quantity: "1", Unit: "ball"},
			{Item: "crushed tomatoes", Quantity: "200", Unit: "g"},
			{Item: "mozzarella", Quantity: "150", Unit: "g"},
			{Item: "basil leaves", Quantity: "8", Unit: ""},
		},
		Instructions: models.Instructions{
			{StepNumber: 1, Description: "Stretch the dough and spread the tomatoes."},
			{StepNumber: 2, Description: "Top with mozzarella and bake at 250C."},
			{StepNumber: 3, Description: "Finish with basil."},
		},
		Calories: floatPtr(800),
		Rating:   5,
	},
	{
		Title:       "Butter Chicken",
		Description: "Creamy tomato curry with tender chicken",
		CuisineType: "Indian",
		Dietary:     "Non-Veg",
		PrepTime:    30,
		CookTime:    40,
		Servings:    4,
		Ingredients: models.Ingredients{
			{Item: "chicken thighs", Quantity: "600", Unit: "g"},
			{Item: "yogurt", Quantity: "150", Unit: "ml"},
			{Item: "butter", Quantity: "50", Unit: "g"},
			{Item: "cream", Quantity: "100", Unit: "ml"},
		},
		Instructions: models.Instructions{
			{StepNumber: 1, Description: "Marinate the chicken in yogurt and spices."},
			{StepNumber: 2, Description: "Sear, then simmer in the butter tomato sauce."},
		},
	},
	{
		Title:       "Chocolate Mug Cake",
		Description: "Single serving chocolate cake from the microwave",
		Category:    "Dessert",
		CuisineType: "American",
		PrepTime:    5,
		CookTime:    2,
		Servings:    1,
		Ingredients: models.Ingredients{
			{Item: "flour", Quantity: "4", Unit: "tbsp"},
			{Item: "cocoa powder", Quantity: "2", Unit: "tbsp"},
			{Item: "milk", Quantity: "3", Unit: "tbsp"},
		},
		Instructions: models.Instructions{
			{StepNumber: 1, Description: "Whisk everything in a mug."},
			{StepNumber: 2, Description: "Microwave for 90 seconds."},
		},
		Rating: 4,
	},
	{
		Title:       "Tomato Basil Soup",
		Category:    "Soup",
		CuisineType: "Mediterranean",
		PrepTime:    10,
		CookTime:    25,
		Servings:    6,
	},
}

func main() {
	name := flag.String("name", "Demo Cook", "Name of the demo user")
	email := flag.String("email", "demo@example.com", "Email of the demo user")
	password := flag.String("password", "password123", "Password of the demo user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)

	result, err := authService.Register(ctx, &types.RegisterRequest{
		Name:            *name,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *password,
	})
	if apperr.Is(err, apperr.KindConflict) {
		log.Info().Str("email", *email).Msg("demo user already exists, skipping seed")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create demo user")
	}

	for i := range sampleRecipes {
		recipe, err := recipeService.Create(ctx, result.User.ID, &sampleRecipes[i])
		if err != nil {
			log.Fatal().Err(err).Str("title", sampleRecipes[i].Title).Msg("failed to create recipe")
		}
		log.Info().Str("id", recipe.ID.String()).Str("title", recipe.Title).Msg("created recipe")
	}
	log.Info().Str("email", *email).Int("recipes", len(sampleRecipes)).Msg("seed complete")
}
