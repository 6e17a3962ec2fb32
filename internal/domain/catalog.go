package domain

// CatalogProperty is one entry of the fixed campus property catalog
// replicated per cohort during round-2 setup.
type CatalogProperty struct {
	Name      string
	BaseValue int64
	RentValue int64
	Group     string
}

// BaseProperties is the per-cohort property catalog.
var BaseProperties = []CatalogProperty{
	{Name: "Main Gate", BaseValue: 1000, RentValue: 100, Group: "Start"},
	{Name: "Gazebo", BaseValue: 1500, RentValue: 150, Group: "Hangout"},
	{Name: "Rock Plaza", BaseValue: 1500, RentValue: 150, Group: "Hangout"},
	{Name: "Anna Audi", BaseValue: 2000, RentValue: 200, Group: "Academic"},
	{Name: "SJT", BaseValue: 2500, RentValue: 250, Group: "Academic"},
	{Name: "TT", BaseValue: 2500, RentValue: 250, Group: "Academic"},
	{Name: "MB", BaseValue: 3000, RentValue: 300, Group: "Academic"},
	{Name: "GDN", BaseValue: 3000, RentValue: 300, Group: "Academic"},
	{Name: "Library", BaseValue: 3500, RentValue: 350, Group: "Academic"},
	{Name: "SMV", BaseValue: 3500, RentValue: 350, Group: "Academic"},
	{Name: "CB", BaseValue: 4000, RentValue: 400, Group: "Academic"},
	{Name: "AB1", BaseValue: 4500, RentValue: 450, Group: "Academic"},
	{Name: "AB2", BaseValue: 4500, RentValue: 450, Group: "Academic"},
	{Name: "AB3", BaseValue: 5000, RentValue: 500, Group: "Academic"},
	{Name: "Foodys", BaseValue: 2000, RentValue: 200, Group: "Food"},
	{Name: "PRP", BaseValue: 2000, RentValue: 200, Group: "Food"},
	{Name: "Enzo", BaseValue: 2500, RentValue: 250, Group: "Food"},
	{Name: "Dominos", BaseValue: 2500, RentValue: 250, Group: "Food"},
	{Name: "Hostel Block A", BaseValue: 1000, RentValue: 100, Group: "Hostel"},
	{Name: "Hostel Block B", BaseValue: 1000, RentValue: 100, Group: "Hostel"},
}
