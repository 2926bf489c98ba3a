package workspace

import (
	"fmt"
	"sort"
	"strings"

	"modforge-backend/internal/models"
)

// ScaffoldPlan is a rendered starter project before it is persisted. Files
// holds directory records first, then file records, both in path order, so
// parents always precede children on insert.
type ScaffoldPlan struct {
	Files     []models.ProjectFile
	Paths     []string
	Structure map[string]string
	NextSteps []string
}

var scaffoldNextSteps = []string{
	"Review generated mod configuration",
	"Add textures to assets/textures/ folders",
	"Implement your first custom block or item",
	"Configure mod metadata in mods.toml",
	"Build and test your mod with gradlew runClient",
}

// NormalizeModID lowercases a project name and strips everything outside
// [a-z0-9], matching the mod id convention used across the generated files.
func NormalizeModID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClassNameFor derives the Java main class name from the project name.
func ClassNameFor(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "ExampleMod"
	}
	s := b.String()
	return strings.ToUpper(s[:1]) + s[1:] + "Mod"
}

// BuildScaffold renders the complete starter layout for a project. The
// resulting records carry no IDs or timestamps; those come back from the
// database on insert.
func BuildScaffold(project *models.Project) *ScaffoldPlan {
	modID := NormalizeModID(project.Name)
	if modID == "" {
		modID = "examplemod"
	}
	className := ClassNameFor(project.Name)
	description := project.Description.String
	if description == "" {
		description = "A Minecraft mod"
	}
	pkgPath := "src/main/java/com/yourname/" + modID

	structure := map[string]string{
		"build.gradle":      buildGradleFor(project.Platform, project.MinecraftVersion),
		"gradle.properties": gradlePropertiesFor(project.Platform, project.MinecraftVersion),
		"settings.gradle":   fmt.Sprintf("rootProject.name = '%s'", modID),
		"gradlew":           gradlewScript,
		"gradlew.bat":       gradlewBat,
		"README.md":         readmeFor(project.Name, description),
		".gitignore":        gitignoreBody,

		pkgPath + "/" + className + ".java":          mainModClassFor(project.Platform, modID, className),
		pkgPath + "/registry/ModItems.java":          modItemsClass(modID),
		pkgPath + "/registry/ModBlocks.java":         modBlocksClass(modID),
		pkgPath + "/registry/ModEntities.java":       modEntitiesClass(modID),
		pkgPath + "/events/CommonEvents.java":        commonEventsClass(modID),
		pkgPath + "/config/ModConfig.java":           modConfigClass(modID),
		"src/main/resources/META-INF/mods.toml":      modsTomlFor(modID, project.Name, description),
		"src/main/resources/pack.mcmeta":             packMcmeta,
		"src/main/resources/assets/" + modID + "/lang/en_us.json":                       langFileFor(modID),
		"src/main/resources/assets/" + modID + "/textures/item/example_item.png":        "# Placeholder texture file",
		"src/main/resources/assets/" + modID + "/textures/block/example_block.png":      "# Placeholder texture file",
		"src/main/resources/assets/" + modID + "/models/item/example_item.json":         itemModelFor(modID),
		"src/main/resources/assets/" + modID + "/models/block/example_block.json":       blockModelFor(modID),
		"src/main/resources/assets/" + modID + "/blockstates/example_block.json":        blockstateFor(modID),
		"src/main/resources/data/" + modID + "/recipes/example_item.json":               recipeFor(modID),
		"src/main/resources/data/" + modID + "/loot_tables/blocks/example_block.json":   lootTableFor(modID),
		"src/main/resources/data/" + modID + "/tags/blocks/example_block_tag.json":      blockTagFor(modID),
		"src/main/resources/data/" + modID + "/advancements/root.json":                  advancementFor(modID),
		"src/test/java/com/yourname/" + modID + "/ModTests.java":                        testClass(modID),
	}

	switch project.Platform {
	case models.PlatformFabric:
		structure["src/main/resources/fabric.mod.json"] = fabricModJSON(modID, project.Name, className, description)
	case models.PlatformQuilt:
		structure["src/main/resources/quilt.mod.json"] = quiltModJSON(modID, project.Name, className, description)
	}

	dirSet := map[string]bool{}
	filePaths := make([]string, 0, len(structure))
	for path := range structure {
		filePaths = append(filePaths, path)
		for parent := models.ParentOf(path); parent != ""; parent = models.ParentOf(parent) {
			dirSet[parent] = true
		}
	}
	sort.Strings(filePaths)

	dirPaths := make([]string, 0, len(dirSet))
	for dir := range dirSet {
		dirPaths = append(dirPaths, dir)
	}
	sort.Strings(dirPaths)

	files := make([]models.ProjectFile, 0, len(dirPaths)+len(filePaths))
	for _, dir := range dirPaths {
		files = append(files, models.ProjectFile{
			ProjectID:   project.ID,
			Path:        dir,
			Name:        models.BaseOf(dir),
			FileType:    "folder",
			IsDirectory: true,
			ParentPath:  models.NullFrom(models.ParentOf(dir)),
		})
	}
	for _, path := range filePaths {
		files = append(files, models.ProjectFile{
			ProjectID:  project.ID,
			Path:       path,
			Name:       models.BaseOf(path),
			Content:    structure[path],
			FileType:   models.FileTypeFor(path),
			ParentPath: models.NullFrom(models.ParentOf(path)),
		})
	}

	return &ScaffoldPlan{
		Files:     files,
		Paths:     filePaths,
		Structure: structure,
		NextSteps: scaffoldNextSteps,
	}
}

func buildGradleFor(platform, mcVersion string) string {
	switch platform {
	case models.PlatformFabric:
		return `plugins {
    id 'fabric-loom' version '1.4-SNAPSHOT'
    id 'maven-publish'
}

version = project.mod_version
group = project.maven_group

repositories {
    maven {
        name = 'ParchmentMC'
        url = 'https://maven.parchmentmc.org'
    }
}

dependencies {
    minecraft "com.mojang:minecraft:${project.minecraft_version}"
    mappings loom.officialMojangMappings()
    modImplementation "net.fabricmc:fabric-loader:${project.loader_version}"
    modImplementation "net.fabricmc.fabric-api:fabric-api:${project.fabric_version}"
}`
	case models.PlatformQuilt:
		return `plugins {
    id 'org.quiltmc.loom' version '1.4.+'
}

version = project.mod_version
group = project.maven_group

dependencies {
    minecraft "com.mojang:minecraft:${project.minecraft_version}"
    mappings loom.officialMojangMappings()
    modImplementation "org.quiltmc:quilt-loader:${project.loader_version}"
    modImplementation "org.quiltmc.quilted-fabric-api:quilted-fabric-api:${project.fabric_version}"
}`
	case models.PlatformNeoForge:
		return fmt.Sprintf(`plugins {
    id 'net.neoforged.gradle' version '7.0.80'
    id 'maven-publish'
}

version = '1.0.0'
group = 'com.yourname.modname'

java.toolchain.languageVersion = JavaLanguageVersion.of(21)

minecraft {
    mappings channel: 'official', version: '%s'
}`, mcVersion)
	default:
		return fmt.Sprintf(`plugins {
    id 'eclipse'
    id 'maven-publish'
    id 'net.minecraftforge.gradle' version '5.1.+'
}

version = '1.0.0'
group = 'com.yourname.modname'
archivesBaseName = 'modname'

java.toolchain.languageVersion = JavaLanguageVersion.of(17)

minecraft {
    mappings channel: 'official', version: '%s'
    runs {
        client {
            workingDirectory project.file('run')
            property 'forge.logging.markers', 'REGISTRIES'
            property 'forge.logging.console.level', 'debug'
            mods {
                modname {
                    source sourceSets.main
                }
            }
        }
    }
}

dependencies {
    minecraft 'net.minecraftforge:forge:%s-47.2.0'
}`, mcVersion, mcVersion)
	}
}

func gradlePropertiesFor(platform, mcVersion string) string {
	loaderVersion := "0.19.3"
	if platform == models.PlatformFabric {
		loaderVersion = "0.14.24"
	}
	return fmt.Sprintf(`org.gradle.jvmargs=-Xmx3G
org.gradle.daemon=false
minecraft_version=%s
mod_version=1.0.0
maven_group=com.yourname.modname
loader_version=%s
fabric_version=0.91.0+1.20.1`, mcVersion, loaderVersion)
}

const gradlewScript = `#!/bin/sh
# Gradle wrapper script for Unix systems
GRADLE_APP_NAME="Gradle"
exec gradle "$@"`

const gradlewBat = `@echo off
rem Gradle wrapper script for Windows
gradle %*`

func readmeFor(name, description string) string {
	return fmt.Sprintf(`# %s

%s

## Building

Run `+"`./gradlew build`"+` to build the mod.

## Development

Run `+"`./gradlew runClient`"+` to start a development client.

## License

This mod is licensed under MIT License.`, name, description)
}

const gitignoreBody = `# Build output
build/
.gradle/
run/

# IDE files
.idea/
*.iml
*.ipr
*.iws
.vscode/

# OS files
.DS_Store
Thumbs.db

# Logs
logs/
*.log`

func mainModClassFor(platform, modID, className string) string {
	switch platform {
	case models.PlatformFabric:
		return fmt.Sprintf(`package com.yourname.%s;

import net.fabricmc.api.ModInitializer;

public class %s implements ModInitializer {
    @Override
    public void onInitialize() {
        // Mod initialization code here
    }
}`, modID, className)
	case models.PlatformQuilt:
		return fmt.Sprintf(`package com.yourname.%s;

import org.quiltmc.loader.api.ModContainer;
import org.quiltmc.qsl.base.api.entrypoint.ModInitializer;

public class %s implements ModInitializer {
    @Override
    public void onInitialize(ModContainer mod) {
        // Mod initialization code here
    }
}`, modID, className)
	case models.PlatformNeoForge:
		return fmt.Sprintf(`package com.yourname.%s;

import net.neoforged.fml.common.Mod;
import net.neoforged.fml.event.lifecycle.FMLCommonSetupEvent;
import net.neoforged.bus.api.IEventBus;
import net.neoforged.fml.ModLoadingContext;

@Mod("%s")
public class %s {
    public %s(IEventBus modEventBus) {
        modEventBus.addListener(this::setup);
    }

    private void setup(final FMLCommonSetupEvent event) {
        // Mod setup code here
    }
}`, modID, modID, className, className)
	default:
		return fmt.Sprintf(`package com.yourname.%s;

import net.minecraftforge.common.MinecraftForge;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.fml.event.lifecycle.FMLCommonSetupEvent;
import net.minecraftforge.fml.javafmlmod.FMLJavaModLoadingContext;

@Mod("%s")
public class %s {
    public %s() {
        FMLJavaModLoadingContext.get().getModEventBus().addListener(this::setup);
        MinecraftForge.EVENT_BUS.register(this);
    }

    private void setup(final FMLCommonSetupEvent event) {
        // Mod setup code here
    }
}`, modID, modID, className, className)
	}
}

func modItemsClass(modID string) string {
	return fmt.Sprintf(`package com.yourname.%s.registry;

import net.minecraft.world.item.Item;
import net.minecraftforge.registries.DeferredRegister;
import net.minecraftforge.registries.ForgeRegistries;
import net.minecraftforge.registries.RegistryObject;

public class ModItems {
    public static final DeferredRegister<Item> ITEMS = DeferredRegister.create(ForgeRegistries.ITEMS, "%s");

    // Example item registration
    public static final RegistryObject<Item> EXAMPLE_ITEM = ITEMS.register("example_item",
        () -> new Item(new Item.Properties()));
}`, modID, modID)
}

func modBlocksClass(modID string) string {
	return fmt.Sprintf(`package com.yourname.%s.registry;

import net.minecraft.world.level.block.Block;
import net.minecraft.world.level.block.state.BlockBehaviour;
import net.minecraft.world.level.material.Material;
import net.minecraftforge.registries.DeferredRegister;
import net.minecraftforge.registries.ForgeRegistries;
import net.minecraftforge.registries.RegistryObject;

public class ModBlocks {
    public static final DeferredRegister<Block> BLOCKS = DeferredRegister.create(ForgeRegistries.BLOCKS, "%s");

    // Example block registration
    public static final RegistryObject<Block> EXAMPLE_BLOCK = BLOCKS.register("example_block",
        () -> new Block(BlockBehaviour.Properties.of(Material.STONE)));
}`, modID, modID)
}

func modEntitiesClass(modID string) string {
	return fmt.Sprintf(`package com.yourname.%s.registry;

import net.minecraft.world.entity.EntityType;
import net.minecraftforge.registries.DeferredRegister;
import net.minecraftforge.registries.ForgeRegistries;

public class ModEntities {
    public static final DeferredRegister<EntityType<?>> ENTITIES = DeferredRegister.create(ForgeRegistries.ENTITY_TYPES, "%s");

    // Entity registrations will go here
}`, modID, modID)
}

func commonEventsClass(modID string) string {
	return fmt.Sprintf(`package com.yourname.%s.events;

import net.minecraftforge.eventbus.api.SubscribeEvent;
import net.minecraftforge.fml.common.Mod;
import net.minecraftforge.event.entity.player.PlayerEvent;

@Mod.EventBusSubscriber(modid = "%s")
public class CommonEvents {

    @SubscribeEvent
    public static void onPlayerJoin(PlayerEvent.PlayerLoggedInEvent event) {
        // Handle player join events
    }
}`, modID, modID)
}

func modConfigClass(modID string) string {
	return fmt.Sprintf(`package com.yourname.%s.config;

import net.minecraftforge.common.ForgeConfigSpec;

public class ModConfig {
    public static final ForgeConfigSpec.Builder BUILDER = new ForgeConfigSpec.Builder();
    public static final ForgeConfigSpec SPEC;

    // Example config option
    public static final ForgeConfigSpec.BooleanValue EXAMPLE_SETTING;

    static {
        EXAMPLE_SETTING = BUILDER
            .comment("An example configuration setting")
            .define("example_setting", true);

        SPEC = BUILDER.build();
    }
}`, modID)
}

func modsTomlFor(modID, displayName, description string) string {
	return fmt.Sprintf(`modLoader="javafml"
loaderVersion="[47,)"
license="MIT"

[[mods]]
modId="%s"
version="${file.jarVersion}"
displayName="%s"
description='''%s'''

[[dependencies.%s]]
modId="forge"
mandatory=true
versionRange="[47,)"
ordering="NONE"
side="BOTH"`, modID, displayName, description, modID)
}

const packMcmeta = `{
  "pack": {
    "description": "Mod resources",
    "pack_format": 15
  }
}`

func langFileFor(modID string) string {
	return fmt.Sprintf(`{
  "item.%s.example_item": "Example Item",
  "block.%s.example_block": "Example Block",
  "itemGroup.%s": "Example Mod"
}`, modID, modID, modID)
}

func itemModelFor(modID string) string {
	return fmt.Sprintf(`{
  "parent": "item/generated",
  "textures": {
    "layer0": "%s:item/example_item"
  }
}`, modID)
}

func blockModelFor(modID string) string {
	return fmt.Sprintf(`{
  "parent": "block/cube_all",
  "textures": {
    "all": "%s:block/example_block"
  }
}`, modID)
}

func blockstateFor(modID string) string {
	return fmt.Sprintf(`{
  "variants": {
    "": {
      "model": "%s:block/example_block"
    }
  }
}`, modID)
}

func recipeFor(modID string) string {
	return fmt.Sprintf(`{
  "type": "minecraft:crafting_shaped",
  "pattern": [
    "XXX",
    "XYX",
    "XXX"
  ],
  "key": {
    "X": {
      "item": "minecraft:stone"
    },
    "Y": {
      "item": "minecraft:diamond"
    }
  },
  "result": {
    "item": "%s:example_item",
    "count": 1
  }
}`, modID)
}

func lootTableFor(modID string) string {
	return fmt.Sprintf(`{
  "type": "minecraft:block",
  "pools": [
    {
      "rolls": 1,
      "entries": [
        {
          "type": "minecraft:item",
          "name": "%s:example_block"
        }
      ]
    }
  ]
}`, modID)
}

func blockTagFor(modID string) string {
	return fmt.Sprintf(`{
  "replace": false,
  "values": [
    "%s:example_block"
  ]
}`, modID)
}

func advancementFor(modID string) string {
	return fmt.Sprintf(`{
  "display": {
    "icon": {
      "item": "%s:example_item"
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
            "items": ["%s:example_item"]
          }
        ]
      }
    }
  },
  "requirements": [["has_item"]]
}`, modID, modID)
}

func testClass(modID string) string {
	return fmt.Sprintf(`package com.yourname.%s;

import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.*;

public class ModTests {

    @Test
    public void testModInitialization() {
        // Test mod initialization
        assertTrue(true, "Mod should initialize successfully");
    }
}`, modID)
}

func fabricModJSON(modID, name, className, description string) string {
	return fmt.Sprintf(`{
  "schemaVersion": 1,
  "id": "%s",
  "version": "${version}",
  "name": "%s",
  "description": "%s",
  "authors": ["Your Name"],
  "contact": {},
  "license": "MIT",
  "icon": "assets/%s/icon.png",
  "environment": "*",
  "entrypoints": {
    "main": ["com.yourname.%s.%s"]
  },
  "depends": {
    "fabricloader": ">=0.14.0",
    "minecraft": "~1.20.1",
    "java": ">=17",
    "fabric-api": "*"
  }
}`, modID, name, description, modID, modID, className)
}

func quiltModJSON(modID, name, className, description string) string {
	return fmt.Sprintf(`{
  "schema_version": 1,
  "quilt_loader": {
    "group": "com.yourname.%s",
    "id": "%s",
    "version": "${version}",
    "metadata": {
      "name": "%s",
      "description": "%s",
      "contributors": { "Your Name": "Owner" },
      "contact": {},
      "license": "MIT"
    },
    "intermediate_mappings": "net.fabricmc:intermediary",
    "entrypoints": {
      "init": ["com.yourname.%s.%s"]
    },
    "depends": [
      { "id": "quilt_loader", "version": ">=0.19.0" },
      { "id": "quilted_fabric_api", "version": ">=7.0.0" },
      { "id": "minecraft", "version": ">=1.20.0" }
    ]
  }
}`, modID, modID, name, description, modID, className)
}
