package main

import (
	"croptrade/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.AuthenticationModel{},
		model.RefreshTokenModel{},
		model.UserRoleModel{},
		model.ProfileModel{},
		model.TransporterModel{},
		model.CropModel{},
		model.TradeModel{},
		model.TransportRequestModel{},
		model.UserDeviceModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
