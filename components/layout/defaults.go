package layout

var defaultCatalogEntries = []CatalogEntry{
	{
		Type: TypeDirector,
		Name: "Mot du Directeur",
		NameLocalized: map[string]string{
			"en": "Director's Message",
		},
		Description: "Message épinglé de la direction",
		Category:    "communication",
		DefaultSize: SizeSmall,
		Required:    true,
		Anchor:      AnchorFront,
	},
	{
		Type: TypeNews,
		Name: "Actualités",
		NameLocalized: map[string]string{
			"en": "News",
		},
		Description: "Carrousel des derniers articles",
		Category:    "communication",
		DefaultSize: SizeLarge,
	},
	{
		Type: TypeSafety,
		Name: "Compteur Sécurité",
		NameLocalized: map[string]string{
			"en": "Safety Counter",
		},
		Description: "Jours sans accident",
		Category:    "hse",
		DefaultSize: SizeSmall,
	},
	{
		Type: TypeCalendar,
		Name: "Calendrier des Événements",
		NameLocalized: map[string]string{
			"en": "Events Calendar",
		},
		Description: "Événements à venir",
		Category:    "events",
		DefaultSize: SizeMedium,
		Required:    true,
		Anchor:      AnchorBack,
	},
	{
		Type: TypeIdeas,
		Name: "Boîte à Idées",
		NameLocalized: map[string]string{
			"en": "Idea Box",
		},
		Description: "Suggestions des collaborateurs",
		Category:    "communication",
		DefaultSize: SizeMedium,
	},
	{
		Type: TypeApps,
		Name: "Applications",
		NameLocalized: map[string]string{
			"en": "Applications",
		},
		Description: "Raccourcis vers les applications internes",
		Category:    "tools",
		DefaultSize: SizeMedium,
	},
	{
		Type: TypeMenu,
		Name: "Menu du Restaurant",
		NameLocalized: map[string]string{
			"en": "Cafeteria Menu",
		},
		Description: "Menu du jour de la cafétéria",
		Category:    "services",
		DefaultSize: SizeMedium,
	},
}

// defaultRenames maps every historically shipped widget type to its
// current replacement. The first portal release shipped a countdown
// widget that was replaced by the idea box.
var defaultRenames = map[WidgetType]WidgetType{
	"countdown": TypeIdeas,
}

// defaultPlacementOrder fixes the seed dashboard: director first, news
// front and center, services at the bottom.
var defaultPlacementOrder = []WidgetType{
	TypeDirector,
	TypeNews,
	TypeSafety,
	TypeCalendar,
	TypeIdeas,
	TypeApps,
	TypeMenu,
}

// DefaultCatalogEntries returns copies of the built-in catalog entries.
func DefaultCatalogEntries() []CatalogEntry {
	out := make([]CatalogEntry, len(defaultCatalogEntries))
	for i, entry := range defaultCatalogEntries {
		copyEntry := entry
		if entry.NameLocalized != nil {
			copyEntry.NameLocalized = make(map[string]string, len(entry.NameLocalized))
			for k, v := range entry.NameLocalized {
				copyEntry.NameLocalized[k] = v
			}
		}
		out[i] = copyEntry
	}
	return out
}

// DefaultPlacements materializes the seed dashboard: one visible
// placement per built-in widget type, orders 1..N, id equal to the type
// slug, title and size from the catalog entry.
func DefaultPlacements() []WidgetPlacement {
	out := make([]WidgetPlacement, 0, len(defaultPlacementOrder))
	byType := make(map[WidgetType]CatalogEntry, len(defaultCatalogEntries))
	for _, entry := range defaultCatalogEntries {
		byType[entry.Type] = entry
	}
	for i, t := range defaultPlacementOrder {
		entry := byType[t]
		out = append(out, WidgetPlacement{
			ID:        string(t),
			Type:      t,
			Title:     entry.Name,
			Size:      entry.DefaultSize,
			Order:     i + 1,
			IsVisible: true,
		})
	}
	return out
}
