package models

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&PeriodModel{},
		&CultureModel{},
		&CollectionModel{},
		&ArtifactModel{},
		&ArtifactImageModel{},
		&AudioGuideModel{},
		&VideoModel{},
		&VisitModel{},
	}
}
