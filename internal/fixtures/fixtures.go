// Package fixtures holds the starter catalog loaded by the bulk migration.
package fixtures

type Product struct {
	Name        string
	Description string
	ImageURL    string
	Categories  []string
	Price       string
	Stock       int
	IsNew       bool
	Featured    bool
	Weight      string
	Dimensions  string
}

var Fasteners = []Product{
	{
		Name:        "Hex Head Bolt M8 x 40mm",
		Description: "Zinc plated grade 8.8 hex bolt, partially threaded.",
		ImageURL:    "/images/fasteners/hex-bolt-m8.jpg",
		Categories:  []string{"Bolts", "Hex"},
		Price:       "0.45", Stock: 2400, Featured: true,
		Weight: "22g", Dimensions: "M8 x 40mm",
	},
	{
		Name:        "Carriage Bolt M10 x 60mm",
		Description: "Hot dip galvanised round head carriage bolt with square neck.",
		ImageURL:    "/images/fasteners/carriage-bolt-m10.jpg",
		Categories:  []string{"Bolts"},
		Price:       "0.80", Stock: 1200,
		Weight: "48g", Dimensions: "M10 x 60mm",
	},
	{
		Name:        "Hex Nut M8",
		Description: "Grade 8 zinc plated full hex nut.",
		ImageURL:    "/images/fasteners/hex-nut-m8.jpg",
		Categories:  []string{"Nuts", "Hex"},
		Price:       "0.08", Stock: 10000,
		Weight: "5g", Dimensions: "M8",
	},
	{
		Name:        "Nylon Lock Nut M6",
		Description: "Stainless steel A2 nyloc nut resisting vibration loosening.",
		ImageURL:    "/images/fasteners/nyloc-m6.jpg",
		Categories:  []string{"Nuts"},
		Price:       "0.12", Stock: 6000, IsNew: true,
		Weight: "3g", Dimensions: "M6",
	},
	{
		Name:        "Flat Washer M8",
		Description: "Form A flat washer, bright zinc.",
		ImageURL:    "/images/fasteners/washer-m8.jpg",
		Categories:  []string{"Washers"},
		Price:       "0.03", Stock: 15000,
		Weight: "2g", Dimensions: "8.4 x 16mm",
	},
	{
		Name:        "Spring Washer M10",
		Description: "Split lock washer for M10 bolts.",
		ImageURL:    "/images/fasteners/spring-washer-m10.jpg",
		Categories:  []string{"Washers"},
		Price:       "0.05", Stock: 8000,
		Weight: "2g", Dimensions: "10.2mm",
	},
	{
		Name:        "Wood Screw 4 x 40mm",
		Description: "Countersunk pozi drive wood screw, yellow passivated.",
		ImageURL:    "/images/fasteners/wood-screw-4x40.jpg",
		Categories:  []string{"Screws"},
		Price:       "0.04", Stock: 20000, Featured: true,
		Weight: "3g", Dimensions: "4 x 40mm",
	},
	{
		Name:        "Self Drilling Screw 5.5 x 25mm",
		Description: "Hex washer head tek screw for sheet steel up to 5mm.",
		ImageURL:    "/images/fasteners/tek-screw.jpg",
		Categories:  []string{"Screws", "Hex"},
		Price:       "0.09", Stock: 9000, IsNew: true,
		Weight: "4g", Dimensions: "5.5 x 25mm",
	},
	{
		Name:        "Sleeve Anchor M10 x 75mm",
		Description: "Masonry sleeve anchor with hex nut and washer.",
		ImageURL:    "/images/fasteners/sleeve-anchor.jpg",
		Categories:  []string{"Anchors"},
		Price:       "0.95", Stock: 0,
		Weight: "55g", Dimensions: "M10 x 75mm",
	},
	{
		Name:        "Blind Rivet 4.8 x 12mm",
		Description: "Aluminium dome head pop rivet, steel mandrel.",
		ImageURL:    "/images/fasteners/blind-rivet.jpg",
		Categories:  []string{"Rivets"},
		Stock:       5000,
		Weight:      "1g", Dimensions: "4.8 x 12mm",
	},
}

var Electrical = []Product{
	{
		Name:        "Twin and Earth Cable 2.5mm 100m",
		Description: "PVC flat cable for ring main circuits.",
		ImageURL:    "/images/electrical/twin-earth-2-5.jpg",
		Categories:  []string{"Cables"},
		Price:       "89.00", Stock: 40, Featured: true,
		Weight: "11kg", Dimensions: "100m drum",
	},
	{
		Name:        "Flexible Cable 3 Core 1.5mm 50m",
		Description: "Heat resistant flex for appliances.",
		ImageURL:    "/images/electrical/flex-3c.jpg",
		Categories:  []string{"Cables"},
		Price:       "42.50", Stock: 65,
		Weight: "4kg", Dimensions: "50m coil",
	},
	{
		Name:        "MCB 32A Type B",
		Description: "Single pole miniature circuit breaker, 6kA.",
		ImageURL:    "/images/electrical/mcb-32a.jpg",
		Categories:  []string{"Circuit Protection"},
		Price:       "6.20", Stock: 300, IsNew: true,
		Weight: "110g", Dimensions: "18 x 85mm",
	},
	{
		Name:        "RCD 63A 30mA",
		Description: "Double pole residual current device.",
		ImageURL:    "/images/electrical/rcd-63a.jpg",
		Categories:  []string{"Circuit Protection"},
		Price:       "24.00", Stock: 120,
		Weight: "230g", Dimensions: "36 x 85mm",
	},
	{
		Name:        "Double Switched Socket 13A",
		Description: "White moulded twin socket outlet.",
		ImageURL:    "/images/electrical/double-socket.jpg",
		Categories:  []string{"Switches & Sockets"},
		Price:       "3.40", Stock: 500, Featured: true,
		Weight: "150g", Dimensions: "146 x 86mm",
	},
	{
		Name:        "1 Gang 2 Way Light Switch",
		Description: "10AX plate switch, white.",
		ImageURL:    "/images/electrical/light-switch.jpg",
		Categories:  []string{"Switches & Sockets"},
		Price:       "1.60", Stock: 800,
		Weight: "70g", Dimensions: "86 x 86mm",
	},
	{
		Name:        "Wago Lever Connector 3 Way",
		Description: "Compact splicing connector for solid and stranded conductors.",
		ImageURL:    "/images/electrical/wago-221-413.jpg",
		Categories:  []string{"Connectors"},
		Price:       "0.35", Stock: 4000, IsNew: true,
		Weight: "3g", Dimensions: "18 x 13mm",
	},
	{
		Name:        "Cable Gland M20",
		Description: "IP68 nylon cable gland with locknut.",
		ImageURL:    "/images/electrical/gland-m20.jpg",
		Categories:  []string{"Connectors"},
		Price:       "0.55", Stock: 2500,
		Weight: "8g", Dimensions: "M20",
	},
	{
		Name:        "Cable Ties 300 x 4.8mm (100 pack)",
		Description: "Black UV stabilised nylon ties.",
		ImageURL:    "/images/electrical/cable-ties.jpg",
		Categories:  []string{"Cable Management"},
		Price:       "2.10", Stock: 900,
		Weight: "150g", Dimensions: "300mm",
	},
	{
		Name:        "Mini Trunking 16 x 16mm 3m",
		Description: "Self adhesive PVC trunking.",
		ImageURL:    "/images/electrical/mini-trunking.jpg",
		Categories:  []string{"Cable Management"},
		Price:       "1.95", Stock: 0,
		Weight: "300g", Dimensions: "16 x 16mm x 3m",
	},
}

// CategoryNames returns the distinct category names of products in first-seen order.
func CategoryNames(products []Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
