// seed carga datos iniciales para un entorno de desarrollo: un usuario admin
// y, opcionalmente, el catálogo de productos desde un archivo plano con el
// formato code|name|unit|regular_price[|club_price].
//
// Uso: go run ./cmd/seed [ruta/productos.txt]
// El usuario admin se toma de SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/infrastructure/postgres"
	"github.com/invorya/mermas-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	if err := seedAdmin(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Usuario admin: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		n, err := seedProducts(ctx, pool, os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Catálogo de productos: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Productos cargados: %d\n", n)
	}

	fmt.Println("Seed completado")
}

// seedAdmin crea el usuario admin si no existe todavía.
func seedAdmin(ctx context.Context, q postgres.Querier) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD no definidos, se omite el usuario admin")
		return nil
	}

	users := postgres.NewUserRepository(q)
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("Usuario %s ya existe, se omite\n", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return err
	}
	fmt.Printf("Usuario admin creado: %s\n", email)
	return nil
}

// seedProducts carga el catálogo desde un archivo plano. Líneas malformadas
// se reportan y se saltan; productos ya existentes se omiten.
func seedProducts(ctx context.Context, q postgres.Querier, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	products := postgres.NewProductRepository(q)
	inserted := 0
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		product, err := parseProductLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: %v\n", lineNo, err)
			continue
		}
		if err := products.Create(ctx, product); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, scanner.Err()
}

// parseProductLine interpreta code|name|unit|regular_price[|club_price].
func parseProductLine(line string) (*entity.Product, error) {
	fields := strings.Split(line, "|")
	if len(fields) < 4 {
		return nil, fmt.Errorf("se esperaban al menos 4 campos, hay %d", len(fields))
	}
	code := strings.TrimSpace(fields[0])
	name := strings.TrimSpace(fields[1])
	unit := strings.ToUpper(strings.TrimSpace(fields[2]))
	if code == "" || name == "" {
		return nil, fmt.Errorf("code y name son requeridos")
	}
	if unit != entity.UnitKG && unit != entity.UnitUN {
		return nil, fmt.Errorf("unidad inválida: %q", unit)
	}
	regular, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, fmt.Errorf("precio regular inválido: %q", fields[3])
	}
	var club *decimal.Decimal
	if len(fields) >= 5 && strings.TrimSpace(fields[4]) != "" {
		c, err := decimal.NewFromString(strings.TrimSpace(fields[4]))
		if err != nil {
			return nil, fmt.Errorf("precio club inválido: %q", fields[4])
		}
		club = &c
	}
	now := time.Now()
	return &entity.Product{
		Code:         code,
		Name:         name,
		UnitType:     unit,
		RegularPrice: regular,
		ClubPrice:    club,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
