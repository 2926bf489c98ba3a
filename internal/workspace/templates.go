package workspace

import "strings"

// FileTemplate describes one "new file from template" choice offered by the
// editor. Template keys select a body in renderTemplate; Category feeds the
// file_type column.
type FileTemplate struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Template  string `json:"template"`
	Category  string `json:"category"`
}

// FileTemplates is the catalog of file kinds the editor can create, in menu
// order.
var FileTemplates = []FileTemplate{
	{Name: "Main Mod Class", Extension: ".java", Template: "mainMod", Category: "java"},
	{Name: "Block Class", Extension: ".java", Template: "block", Category: "java"},
	{Name: "Item Class", Extension: ".java", Template: "item", Category: "java"},
	{Name: "Event Handler", Extension: ".java", Template: "eventHandler", Category: "java"},
	{Name: "Block Model", Extension: ".json", Template: "blockModel", Category: "resource"},
	{Name: "Item Model", Extension: ".json", Template: "itemModel", Category: "resource"},
	{Name: "Blockstate", Extension: ".json", Template: "blockstate", Category: "resource"},
	{Name: "Language File", Extension: ".json", Template: "lang", Category: "resource"},
	{Name: "Recipe", Extension: ".json", Template: "recipe", Category: "data"},
	{Name: "Loot Table", Extension: ".json", Template: "lootTable", Category: "data"},
	{Name: "Tag", Extension: ".json", Template: "tag", Category: "data"},
	{Name: "Advancement", Extension: ".json", Template: "advancement", Category: "data"},
}

// TemplateByKey finds a catalog entry by its template key.
func TemplateByKey(key string) (FileTemplate, bool) {
	for _, t := range FileTemplates {
		if t.Template == key {
			return t, true
		}
	}
	return FileTemplate{}, false
}

// renderTemplate produces the body for a template key by plain string
// substitution of the mod id and the name derived from the file name. No
// validation that the result is a well-formed identifier is attempted; the
// editor treats the output as a starting point, not compilable truth.
func renderTemplate(key, fileName, modID string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(fileName, ".java"), ".json")
	r := strings.NewReplacer("{{name}}", base, "{{modid}}", modID)

	body, ok := templateBodies[key]
	if !ok {
		return ""
	}
	return r.Replace(body)
}

var templateBodies = map[string]string{
	"mainMod": `@Mod("{{modid}}")
public class {{name}} {
    public static final String MODID = "{{modid}}";

    public {{name}}() {
        // Register the setup method for modloading
        FMLJavaModLoadingContext.get().getModEventBus()
            .addListener(this::setup);
    }

    private void setup(final FMLCommonSetupEvent event) {
        LOGGER.info("Hello from {{name}}!");
    }
}`,
	"block": `public class {{name}} extends Block {
    public {{name}}(Properties properties) {
        super(properties);
    }

    // Add custom block behavior here
}`,
	"item": `public class {{name}} extends Item {
    public {{name}}(Properties properties) {
        super(properties);
    }

    // Add custom item behavior here
}`,
	"eventHandler": `@Mod.EventBusSubscriber(modid = "{{modid}}")
public class {{name}} {

    @SubscribeEvent
    public static void onPlayerJoin(PlayerEvent.PlayerLoggedInEvent event) {
        // Handle player join events
    }
}`,
	"blockModel": `{
  "parent": "block/cube_all",
  "textures": {
    "all": "{{modid}}:block/{{name}}"
  }
}`,
	"itemModel": `{
  "parent": "item/generated",
  "textures": {
    "layer0": "{{modid}}:item/{{name}}"
  }
}`,
	"blockstate": `{
  "variants": {
    "": {
      "model": "{{modid}}:block/{{name}}"
    }
  }
}`,
	"lang": `{
  "item.{{modid}}.example_item": "Example Item",
  "block.{{modid}}.example_block": "Example Block",
  "itemGroup.{{modid}}": "Example Mod"
}`,
	"recipe": `{
  "type": "minecraft:crafting_shaped",
  "pattern": [
    "###",
    "###",
    "###"
  ],
  "key": {
    "#": {
      "item": "minecraft:iron_ingot"
    }
  },
  "result": {
    "item": "{{modid}}:{{name}}",
    "count": 1
  }
}`,
	"lootTable": `{
  "type": "minecraft:block",
  "pools": [
    {
      "rolls": 1,
      "entries": [
        {
          "type": "minecraft:item",
          "name": "{{modid}}:{{name}}"
        }
      ]
    }
  ]
}`,
	"tag": `{
  "replace": false,
  "values": [
    "{{modid}}:{{name}}"
  ]
}`,
	"advancement": `{
  "display": {
    "icon": {
      "item": "{{modid}}:example_item"
    },
    "title": "Getting Started",
    "description": "Welcome to the mod!",
    "frame": "task",
    "show_toast": true,
    "announce_to_chat": true,
    "hidden": false
  },
  "criteria": {
    "has_item": {
      "trigger": "minecraft:inventory_changed",
      "conditions": {
        "items": [
          {
            "items": ["{{modid}}:example_item"]
          }
        ]
      }
    }
  },
  "requirements": [["has_item"]]
}`,
}
