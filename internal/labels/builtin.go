package labels

// UnitTypes maps unit-type identifiers sent by the backend to the names
// printed on cut lists.
var UnitTypes = newDictionary("unit-types", map[string]string{
	"base_cabinet":       "وحدة أرضية",
	"base_drawer":        "وحدة أرضية أدراج",
	"base_two_drawers":   "وحدة أرضية درجين",
	"base_three_drawers": "وحدة أرضية ثلاثة أدراج",
	"base_corner":        "وحدة أرضية ركنية",
	"base_corner_l":      "وحدة أرضية ركنية L",
	"base_sink":          "وحدة حوض",
	"base_cooker":        "وحدة بوتاجاز",
	"base_oven":          "وحدة فرن أرضية",
	"base_dishwasher":    "وحدة غسالة صحون",
	"base_open":          "وحدة أرضية مفتوحة",
	"base_end_shelf":     "رف نهاية أرضي",
	"base_pullout":       "وحدة سحارة أرضية",
	"base_bottle":        "وحدة زجاجات",
	"base_filler":        "حشوة أرضية",
	"wall_cabinet":       "وحدة علوية",
	"wall_single_door":   "وحدة علوية باب واحد",
	"wall_double_door":   "وحدة علوية بابين",
	"wall_corner":        "وحدة علوية ركنية",
	"wall_corner_l":      "وحدة علوية ركنية L",
	"wall_open":          "وحدة علوية مفتوحة",
	"wall_glass":         "وحدة علوية زجاج",
	"wall_flap":          "وحدة علوية قلاب",
	"wall_hood":          "وحدة شفاط",
	"wall_microwave":     "وحدة ميكروويف",
	"wall_end_shelf":     "رف نهاية علوي",
	"wall_filler":        "حشوة علوية",
	"tall_cabinet":       "وحدة دولاب طويل",
	"tall_pantry":        "دولاب مؤن",
	"tall_oven":          "دولاب فرن",
	"tall_fridge":        "دولاب ثلاجة",
	"tall_broom":         "دولاب مكانس",
	"island_cabinet":     "وحدة جزيرة",
	"island_open":        "جزيرة مفتوحة",
	"bridge_cabinet":     "وحدة جسر",
})

// PartNames maps part identifiers to printed names.
var PartNames = newDictionary("part-names", map[string]string{
	"side_panel":      "جانب",
	"left_side":       "جانب يسار",
	"right_side":      "جانب يمين",
	"top":             "سقف",
	"bottom":          "أرضية",
	"shelf":           "رف",
	"fixed_shelf":     "رف ثابت",
	"back_panel":      "ظهر",
	"back_rail":       "مدادة خلفية",
	"front_rail":      "مدادة أمامية",
	"rail":            "مدادة",
	"door":            "باب",
	"door_left":       "باب يسار",
	"door_right":      "باب يمين",
	"glass_door":      "باب زجاج",
	"flap_door":       "باب قلاب",
	"drawer_front":    "وش درج",
	"drawer_side":     "جانب درج",
	"drawer_back":     "ظهر درج",
	"drawer_bottom":   "قاع درج",
	"plinth":          "وزرة",
	"filler":          "حشوة",
	"divider":         "فاصل",
	"corner_panel":    "لوح ركنة",
	"end_panel":       "لوح نهاية",
	"hood_panel":      "لوح شفاط",
	"microwave_shelf": "رف ميكروويف",
})

// EdgeOptions describes each edge-banding code in shop vocabulary.
var EdgeOptions = newDictionary("edge-options", map[string]string{
	"-":       "بدون شريط",
	"O":       "شريط من الأربع جهات",
	"OM":      "شريط من الأربع جهات مع مجرى",
	"UM":      "شريط ثلاث جهات مع مجرى",
	"UM-يمين": "شريط ثلاث جهات مع مجرى يمين",
	"UM-يسار": "شريط ثلاث جهات مع مجرى يسار",
	"C":       "شريط ثلاث جهات (تحت ويمين ويسار)",
	"CM":      "شريط ثلاث جهات من تحت مع مجرى",
	"L":       "شريط جهتين (فوق ويسار)",
	"LM":      "شريط جهتين مع مجرى",
	"LM-يمين": "شريط فوق ويسار مع مجرى يمين",
	"LM-يسار": "شريط فوق ويمين مع مجرى يسار",
	"I":       "شريط طول واحد",
	"IM":      "شريط طول واحد مع مجرى",
	"II":      "شريط طولين",
	"IIM":     "شريط طول مع مجرى في الطول الآخر",
	`\`:       "شريط عرض واحد",
	`\M`:      "شريط عرض مع مجرى في العرض الآخر",
	`\\`:      "شريط عرضين",
	`\\M`:     "شريط عرضين مع مجرى",
})
