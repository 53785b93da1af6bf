package main

// @title Donation Service API
// @version 1.0
// @description Food bank donation intake, inspection, disposition and inventory tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Donations
// @tag.description Donation intake and lifecycle endpoints

// @tag.name Items
// @tag.description Inspection and disposition of donated items

// @tag.name Receipts
// @tag.description Donor receipt endpoints

// @tag.name Donors
// @tag.description Donor management endpoints

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Inventory
// @tag.description Inventory management endpoints

// @tag.name Waste
// @tag.description Waste log endpoints

// @tag.name Shifts
// @tag.description Volunteer shift endpoints

// @tag.name Health
// @tag.description Health check endpoints
