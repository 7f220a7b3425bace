package catalog

import "github.com/mesh-intelligence/giftgrid/pkg/types"

// FallbackGifts is served when the /gifts endpoint cannot be reached.
var FallbackGifts = []types.Gift{
	"Santa Hat", "Signet Ring", "Precious Peach", "Plush Pepe", "Spiced Wine",
	"Jelly Bunny", "Durov's Cap", "Perfume Bottle", "Eternal Rose", "Berry Box",
	"Vintage Cigar", "Magic Potion", "Kissed Frog", "Hex Pot", "Evil Eye",
	"Sharp Tongue", "Trapped Heart", "Skull Flower", "Scared Cat", "Spy Agaric",
	"Homemade Cake", "Genie Lamp", "Lunar Snake", "Party Sparkler", "Jester Hat",
	"Witch Hat", "Hanging Star", "Love Candle", "Cookie Heart", "Desk Calendar",
	"Jingle Bells", "Snow Mittens", "Voodoo Doll", "Mad Pumpkin", "Hypno Lollipop",
	"B-Day Candle", "Bunny Muffin", "Astral Shard", "Flying Broom", "Crystal Ball",
	"Eternal Candle", "Swiss Watch", "Ginger Cookie", "Mini Oscar", "Lol Pop",
	"Ion Gem", "Star Notepad", "Loot Bag", "Love Potion", "Toy Bear",
	"Diamond Ring", "Sakura Flower", "Sleigh Bell", "Top Hat", "Record Player",
	"Winter Wreath", "Snow Globe", "Electric Skull", "Tama Gadget", "Candy Cane",
	"Neko Helmet", "Jack-in-the-Box", "Easter Egg", "Bonded Ring", "Pet Snake",
	"Snake Box", "Xmas Stocking", "Big Year", "Holiday Drink", "Gem Signet",
	"Light Sword", "Restless Jar", "Nail Bracelet", "Heroic Helmet", "Bow Tie",
	"Heart Locket", "Lush Bouquet", "Whip Cupcake", "Joyful Bundle", "Cupid Charm",
	"Valentine Box", "Snoop Dogg", "Swag Bag", "Snoop Cigar", "Low Rider",
	"Westside Sign", "Stellar Rocket", "Jolly Chimp", "Moon Pendant", "Ionic Dryer",
	"Input Key", "Mighty Arm", "Artisan Brick", "Clover Pin", "Sky Stilettos",
	"Fresh Socks", "Happy Brownie", "Ice Cream", "Spring Basket", "Instant Ramen",
	"Faith Amulet", "Mousse Cake", "Bling Binky", "Money Pot", "Pretty Posy",
	"Khabib's Papakha", "UFC Strike", "Victory Medal",
}
