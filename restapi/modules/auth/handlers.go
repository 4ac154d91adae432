package auth

import (
	"context"
	"log"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/gofiber/fiber/v2"

	"github.com/fundchain/fundchain-backend/config"
	"github.com/fundchain/fundchain-backend/database"
	"github.com/fundchain/fundchain-backend/model"
	"github.com/fundchain/fundchain-backend/util"
)

// ============================================================================
// AUTH HANDLERS
// ============================================================================

func findAccount(ctx context.Context, db database.DBConnection, address string) (*model.Account, error) {
	query := `
		FOR a IN accounts
			FILTER a.address == @address
			LIMIT 1
			RETURN a
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"address": address},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}
	var account model.Account
	if _, err := cursor.ReadDocument(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Signup creates an account binding an address to a passphrase
func Signup(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Address     string `json:"address"`
			DisplayName string `json:"display_name"`
			Password    string `json:"password"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		address := util.NormalizeAddress(req.Address)
		if !util.IsValidAddress(address) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A valid address is required",
			})
		}
		if len(req.Password) < 8 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Password must be at least 8 characters",
			})
		}

		ctx := c.Context()

		existing, err := findAccount(ctx, db, address)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check existing accounts",
			})
		}
		if existing != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An account already exists for this address",
			})
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create account",
			})
		}

		account := model.NewAccount(address, req.DisplayName)
		account.Key = address
		account.PasswordHash = hash

		if _, err := db.Collections["accounts"].CreateDocument(ctx, account); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create account",
			})
		}

		token, err := GenerateJWT(address, false)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to issue session",
			})
		}
		setAuthCookie(c, token)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"address": address,
		})
	}
}

// Login validates the passphrase for an address and issues a session cookie
func Login(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Address  string `json:"address"`
			Password string `json:"password"`
		}

		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		address := util.NormalizeAddress(req.Address)
		account, err := findAccount(c.Context(), db, address)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to look up account",
			})
		}
		if account == nil || !CheckPasswordHash(req.Password, account.PasswordHash) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid address or password",
			})
		}

		token, err := GenerateJWT(account.Address, account.IsAdmin)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to issue session",
			})
		}
		setAuthCookie(c, token)

		return c.JSON(fiber.Map{
			"success":  true,
			"address":  account.Address,
			"is_admin": account.IsAdmin,
		})
	}
}

// Logout clears the session cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "auth_token",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return c.JSON(fiber.Map{"success": true})
	}
}

// Me reports the attested identity of the caller, guests included
func Me(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authenticated, _ := c.Locals("is_authenticated").(bool)
		if !authenticated {
			return c.JSON(fiber.Map{"is_authenticated": false})
		}

		address := CallerAddress(c)
		account, err := findAccount(c.Context(), db, address)
		if err != nil || account == nil {
			return c.JSON(fiber.Map{"is_authenticated": false})
		}

		return c.JSON(fiber.Map{
			"is_authenticated": true,
			"address":          account.Address,
			"display_name":     account.DisplayName,
			"is_admin":         account.IsAdmin,
		})
	}
}

// RefreshToken extends a valid session
func RefreshToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("auth_token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		refreshed, err := RefreshJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}
		setAuthCookie(c, refreshed)

		return c.JSON(fiber.Map{"success": true})
	}
}

// BootstrapAdmin creates the platform administrator account at startup when
// configured and missing.
func BootstrapAdmin(db database.DBConnection, adminCfg config.AdminConfig) error {
	if adminCfg.Address == "" || adminCfg.Password == "" {
		return nil
	}

	ctx := context.Background()
	address := util.NormalizeAddress(adminCfg.Address)

	existing, err := findAccount(ctx, db, address)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}

	account := model.NewAccount(address, "Platform Admin")
	account.Key = address
	account.PasswordHash = hash
	account.IsAdmin = true

	if _, err := db.Collections["accounts"].CreateDocument(ctx, account); err != nil {
		return err
	}
	log.Printf("Bootstrapped admin account for %s", address)
	return nil
}
