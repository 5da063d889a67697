package game

// MasterCategories is the pool the engine samples from when a game has no
// explicit category selection.
var MasterCategories = []string{
	"frutas",
	"animales",
	"paises",
	"colores",
	"nombres",
	"ciudades",
	"comidas",
	"deportes",
	"profesiones",
	"marcas",
}

// fallbackWordLists are the bundled per-category defaults. The dictionary
// seeds from these at construction and falls back to them whenever the
// external source cannot serve a category.
var fallbackWordLists = map[string][]string{
	"frutas": {
		"manzana", "pera", "platano", "naranja", "uva", "sandia", "melon",
		"fresa", "frambuesa", "mora", "kiwi", "mango", "papaya", "piña",
		"cereza", "ciruela", "durazno", "limon", "lima", "coco", "granada",
		"higo", "guayaba", "maracuya", "mandarina", "nectarina", "arandano",
	},
	"animales": {
		"perro", "gato", "caballo", "vaca", "cerdo", "oveja", "cabra",
		"leon", "tigre", "elefante", "jirafa", "cebra", "mono", "oso",
		"lobo", "zorro", "conejo", "raton", "ardilla", "ciervo", "aguila",
		"buho", "pato", "gallina", "pavo", "serpiente", "tortuga", "rana",
		"ballena", "delfin", "tiburon", "pulpo", "hormiga", "abeja",
	},
	"paises": {
		"argentina", "bolivia", "brasil", "chile", "colombia", "costa rica",
		"cuba", "ecuador", "españa", "francia", "alemania", "grecia",
		"guatemala", "honduras", "italia", "japon", "mexico", "nicaragua",
		"panama", "paraguay", "peru", "portugal", "rusia", "uruguay",
		"venezuela", "canada", "china", "india", "egipto", "australia",
	},
	"colores": {
		"rojo", "azul", "verde", "amarillo", "naranja", "violeta", "rosa",
		"negro", "blanco", "gris", "marron", "celeste", "turquesa",
		"dorado", "plateado", "beige", "fucsia", "lila", "ocre",
	},
	"nombres": {
		"ana", "antonio", "beatriz", "carlos", "carmen", "diego", "elena",
		"federico", "gabriela", "hugo", "ines", "javier", "karina", "laura",
		"manuel", "natalia", "oscar", "pablo", "quique", "rosa", "sergio",
		"teresa", "ursula", "valentina", "walter", "ximena", "yolanda",
	},
	"ciudades": {
		"barcelona", "bogota", "buenos aires", "caracas", "cordoba",
		"guadalajara", "la paz", "lima", "madrid", "medellin", "mendoza",
		"monterrey", "montevideo", "quito", "rosario", "santiago",
		"sevilla", "valencia", "valparaiso", "asuncion", "habana",
	},
	"comidas": {
		"arroz", "asado", "empanada", "ensalada", "guiso", "hamburguesa",
		"lasaña", "milanesa", "paella", "pan", "pasta", "pizza", "pollo",
		"queso", "sopa", "taco", "tamal", "tortilla", "arepa", "ceviche",
		"churrasco", "flan", "gazpacho", "locro", "nachos",
	},
	"deportes": {
		"atletismo", "baloncesto", "beisbol", "boxeo", "ciclismo",
		"esgrima", "futbol", "golf", "gimnasia", "judo", "karate",
		"natacion", "remo", "rugby", "surf", "tenis", "voleibol",
		"waterpolo", "ajedrez", "esqui", "hockey", "padel",
	},
	"profesiones": {
		"abogado", "actor", "arquitecto", "bombero", "carpintero",
		"cocinero", "dentista", "doctor", "electricista", "enfermero",
		"escritor", "fotografo", "ingeniero", "jardinero", "maestro",
		"medico", "musico", "panadero", "periodista", "piloto", "pintor",
		"plomero", "policia", "profesor", "sastre", "veterinario",
	},
	"marcas": {
		"adidas", "apple", "bimbo", "coca cola", "ford", "google", "honda",
		"lego", "levis", "nestle", "nike", "nintendo", "pepsi", "puma",
		"renault", "samsung", "sony", "toyota", "visa", "zara",
	},
}
