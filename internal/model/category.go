package model

// ==================== 市场类目 ====================

// 兜底类目 id
const GeneralCategoryID = 90401

// CategoryRecord 市场类目记录
// ID 为市场侧数字类目 id，Key 为佣金/系数表的查找键，两者独立演进
type CategoryRecord struct {
	ID     int    `json:"id"`
	NameRu string `json:"name_ru"`
	NameUz string `json:"name_uz"`
	Key    string `json:"key"`
}

// CategoryRule 关键词 → 类目的有序匹配规则
// 切片顺序即优先级，首个命中胜出，禁止改为 map
type CategoryRule struct {
	Keyword string
	Record  CategoryRecord
}

// 类目常量
var (
	CategoryPhones      = CategoryRecord{ID: 10101, NameRu: "Смартфоны и телефоны", NameUz: "Smartfonlar va telefonlar", Key: "phones"}
	CategoryNotebooks   = CategoryRecord{ID: 10201, NameRu: "Ноутбуки и компьютеры", NameUz: "Noutbuklar va kompyuterlar", Key: "electronics"}
	CategoryTV          = CategoryRecord{ID: 10301, NameRu: "Телевизоры и аудио", NameUz: "Televizorlar va audio", Key: "electronics"}
	CategoryAppliances  = CategoryRecord{ID: 20101, NameRu: "Бытовая техника", NameUz: "Maishiy texnika", Key: "appliances"}
	CategoryClothes     = CategoryRecord{ID: 30101, NameRu: "Одежда", NameUz: "Kiyim", Key: "fashion"}
	CategoryShoes       = CategoryRecord{ID: 30201, NameRu: "Обувь", NameUz: "Poyabzal", Key: "fashion"}
	CategoryBeauty      = CategoryRecord{ID: 40101, NameRu: "Красота и уход", NameUz: "Go'zallik va parvarish", Key: "beauty"}
	CategoryToys        = CategoryRecord{ID: 50101, NameRu: "Игрушки", NameUz: "O'yinchoqlar", Key: "toys"}
	CategoryBooks       = CategoryRecord{ID: 60101, NameRu: "Книги", NameUz: "Kitoblar", Key: "books"}
	CategoryFurniture   = CategoryRecord{ID: 70101, NameRu: "Мебель", NameUz: "Mebel", Key: "furniture"}
	CategorySport       = CategoryRecord{ID: 80101, NameRu: "Спорт и отдых", NameUz: "Sport va dam olish", Key: "sport"}
	CategoryGeneral     = CategoryRecord{ID: GeneralCategoryID, NameRu: "Товары общего назначения", NameUz: "Umumiy tovarlar", Key: "general"}
)

// DefaultCategoryRules 默认关键词表
// 关键词覆盖 ru / uz / en 三种写法，顺序敏感：具体类目在前
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{"iphone", CategoryPhones},
		{"smartfon", CategoryPhones},
		{"смартфон", CategoryPhones},
		{"телефон", CategoryPhones},
		{"telefon", CategoryPhones},
		{"phone", CategoryPhones},
		{"noutbuk", CategoryNotebooks},
		{"ноутбук", CategoryNotebooks},
		{"laptop", CategoryNotebooks},
		{"macbook", CategoryNotebooks},
		{"kompyuter", CategoryNotebooks},
		{"компьютер", CategoryNotebooks},
		{"televizor", CategoryTV},
		{"телевизор", CategoryTV},
		{"naushnik", CategoryTV},
		{"наушник", CategoryTV},
		{"холодильник", CategoryAppliances},
		{"muzlatgich", CategoryAppliances},
		{"стиральн", CategoryAppliances},
		{"пылесос", CategoryAppliances},
		{"changyutgich", CategoryAppliances},
		{"футболка", CategoryClothes},
		{"куртка", CategoryClothes},
		{"kiyim", CategoryClothes},
		{"одежда", CategoryClothes},
		{"платье", CategoryClothes},
		{"кроссовк", CategoryShoes},
		{"обувь", CategoryShoes},
		{"poyabzal", CategoryShoes},
		{"krossovka", CategoryShoes},
		{"духи", CategoryBeauty},
		{"parfum", CategoryBeauty},
		{"косметик", CategoryBeauty},
		{"kosmetika", CategoryBeauty},
		{"крем", CategoryBeauty},
		{"игрушк", CategoryToys},
		{"o'yinchoq", CategoryToys},
		{"lego", CategoryToys},
		{"книга", CategoryBooks},
		{"kitob", CategoryBooks},
		{"диван", CategoryFurniture},
		{"стол", CategoryFurniture},
		{"mebel", CategoryFurniture},
		{"мебель", CategoryFurniture},
		{"велосипед", CategorySport},
		{"гантел", CategorySport},
		{"sport", CategorySport},
	}
}
