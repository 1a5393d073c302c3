// Package grove is a small scene-tree game framework for [Ebitengine].
//
// A game is a tree of [Node]s. Each node has three dispatch channels,
// input, process and draw, that it opts into with [Node.SetInput],
// [Node.SetProcess] and [Node.SetDraw], plus lifecycle hooks that fire as
// subtrees enter and leave the active tree. Assets (images, atlases, data
// documents, Lua scripts) are loaded through the reference-counted manager
// in package assets.
//
// # Quick start
//
//	cfg, err := grove.LoadConfig("game.toml")
//	if err != nil {
//		cfg = grove.DefaultConfig()
//	}
//	log, _ := grove.NewLogger(cfg.Logging)
//
//	engine, err := grove.NewEngine(cfg, log)
//	if err != nil {
//		log.Fatal("engine", zap.Error(err))
//	}
//
//	root := grove.NewNode("root", engine)
//	hero := grove.NewSprite("hero", engine)
//	hero.SetPosition(320, 240)
//	_ = hero.SetSprite("hero.png")
//	root.AddChild(hero.Node)
//
//	engine.SetRoot(root)
//	if err := grove.Run(engine); err != nil {
//		log.Fatal("run", zap.Error(err))
//	}
//
// Engine implements [ebiten.Game], so it can also be driven by a custom
// game loop that calls Update, Draw and Layout directly.
//
// # Node kinds
//
// [Position] adds a local transform inherited by descendant Position
// nodes. [Sprite] draws an image or atlas region centered on its position.
// [Tween] animates Position fields with [gween]. [Script] runs its hooks in
// a Lua VM. Custom kinds wrap a *Node, install hooks in their constructor,
// and call [Node.Extend] and [Node.SetOwner].
//
// # Dispatch order
//
// Input visits children before their parent; the first node to consume an
// event stops it. Process and draw visit a node before its children.
// Enter-tree runs in pre-order over the whole subtree before any ready hook
// fires; ready then runs in pre-order. Mutate the tree from hooks through
// [Engine.Defer].
//
// ECS integration lives in the grove/ecs module ([Donburi]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package grove
